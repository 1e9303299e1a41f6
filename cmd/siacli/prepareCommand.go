package cmd

import (
	"fmt"

	"github.com/Keyur279/Sia-Cli-tool/pkg/utils"
	"github.com/spf13/cobra"
)

var prepareOptions selectionOptions

// prepareCommand saves an unsigned transaction for a later finalize run
var prepareCommand = &cobra.Command{
	Use:   "prepare <address> <amount> [<address> <amount>...]",
	Short: "Builds a transaction and saves it for signing",
	Long: `Builds a transaction like send, prints the blob and stores it in the
data directory. Run finalize with the printed ID once the signature is
available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, err := prepareTransaction(cmd.Context(), service(), &prepareOptions, args)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer utils.IgnoreErrorOn(store.Close)
		if err := store.Save(pending); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:   %s\n", pending.ID)
		fmt.Fprintf(out, "Fee:  %s\n", pending.Fee.HumanString())
		fmt.Fprintf(out, "Blob: %s\n", pending.Blob)
		return nil
	},
}

func init() {
	prepareOptions.register(prepareCommand.Flags())
	RootCmd.AddCommand(prepareCommand)
}
