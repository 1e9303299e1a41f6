package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Keyur279/Sia-Cli-tool/pkg/utils"
	"github.com/spf13/cobra"
)

var pendingOptions struct {
	delete string
}

// pendingCommand lists transactions waiting for a signature
var pendingCommand = &cobra.Command{
	Use:   "pending",
	Short: "Lists prepared transactions waiting for a signature",
	Long:  `Lists prepared transactions waiting for a signature.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer utils.IgnoreErrorOn(store.Close)

		if pendingOptions.delete != "" {
			if err := store.Delete(pendingOptions.delete); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", pendingOptions.delete)
			return nil
		}

		list, err := store.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No pending transactions.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tINPUTS\tOUTPUTS\tSENT\tFEE")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n", p.ID, p.CreatedAt.Local().Format(time.DateTime),
				len(p.Inputs), len(p.Outputs), p.Total().HumanString(), p.Fee.HumanString())
		}
		return w.Flush()
	},
}

func init() {
	pendingCommand.Flags().StringVar(&pendingOptions.delete, "delete", "", "discard the pending transaction with this ID")
	RootCmd.AddCommand(pendingCommand)
}
