package cmd

import (
	"fmt"

	"github.com/Keyur279/Sia-Cli-tool/pkg/handoff"
	"github.com/Keyur279/Sia-Cli-tool/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// finalizeCommand signs off a pending transaction and broadcasts it
var finalizeCommand = &cobra.Command{
	Use:   "finalize <id> [signature]",
	Short: "Broadcasts a prepared transaction with its signature",
	Long: `Loads a transaction saved by prepare, attaches the signature and
broadcasts it. Without a signature argument the blob is printed again and
the signature is read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer utils.IgnoreErrorOn(store.Close)

		pending, err := store.Load(args[0])
		if err != nil {
			return err
		}

		var outcome handoff.Outcome
		if len(args) == 2 {
			outcome = handoff.OutcomeOf(args[1])
		} else if outcome, err = handoff.Await(newPrompter(cmd), pending); err != nil {
			return errors.Wrap(err, "failed to read signature")
		}
		if outcome.Cancelled {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, the transaction stays pending.")
			return nil
		}
		signature := outcome.Signature

		if err := finalizeAndSubmit(cmd.Context(), service(), pending, signature, cmd.OutOrStdout()); err != nil {
			return err
		}
		return store.Delete(pending.ID)
	},
}

func init() {
	RootCmd.AddCommand(finalizeCommand)
}
