package cmd

import (
	"fmt"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/fees"
	"github.com/spf13/cobra"
)

// balanceCommand shows spendable and immature funds
var balanceCommand = &cobra.Command{
	Use:   "balance [address]",
	Short: "Shows the balance of the wallet",
	Long:  `Shows the mature and immature balance of an address, by default the wallet address.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr common.Address
		if len(args) == 1 {
			var err error
			if addr, err = common.ParseAddress(args[0]); err != nil {
				return err
			}
		} else {
			pk, err := walletKey()
			if err != nil {
				return err
			}
			addr = common.StandardAddress(pk)
		}

		svc := service()
		estimator := &fees.Estimator{UTXOs: svc, Chain: svc, Logger: logger}
		b, err := estimator.Balance(cmd.Context(), addr)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Address:   %s\n", addr)
		fmt.Fprintf(out, "Height:    %d\n", b.Height)
		fmt.Fprintf(out, "Spendable: %s\n", b.Mature.HumanString())
		fmt.Fprintf(out, "Immature:  %s\n", b.Immature.HumanString())
		fmt.Fprintf(out, "Outputs:   %d\n", b.Outputs)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(balanceCommand)
}
