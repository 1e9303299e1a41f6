package cmd

import (
	"fmt"
	"io"

	"github.com/Keyur279/Sia-Cli-tool/pkg/blob"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/spf13/cobra"
)

// inspectCommand decodes a blob so it can be checked before signing
var inspectCommand = &cobra.Command{
	Use:   "inspect [blob]",
	Short: "Decodes a transaction blob",
	Long:  `Decodes a transaction blob given as argument or on stdin.`,
	Args:  cobra.MaximumNArgs(1),
	// inspect works offline
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		var s string
		if len(args) == 1 {
			s = args[0]
		} else {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			s = string(b)
		}

		decoded, err := blob.DecodeHex(s)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Inputs (%d):\n", len(decoded.ParentIDs))
		for _, id := range decoded.ParentIDs {
			fmt.Fprintf(out, "  %s\n", id)
		}
		fmt.Fprintf(out, "Outputs (%d):\n", len(decoded.Outputs))
		for _, o := range decoded.Outputs {
			fmt.Fprintf(out, "  %s  %s\n", o.Address, o.Value.HumanString())
		}
		fmt.Fprintf(out, "Fee: %s (%s H)\n", decoded.Fee.HumanString(), decoded.Fee)
		if total, overflow := common.SumOutputs(decoded.Outputs); !overflow {
			fmt.Fprintf(out, "Total out: %s\n", total.HumanString())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCommand)
}
