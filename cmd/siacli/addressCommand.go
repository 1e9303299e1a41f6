package cmd

import (
	"fmt"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/spf13/cobra"
)

// addressCommand prints the standard address of a public key
var addressCommand = &cobra.Command{
	Use:   "address [public-key]",
	Short: "Prints the wallet address of a public key",
	Long:  `Prints the standard single signature address of the given or configured public key.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pk common.PublicKey
		var err error
		if len(args) == 1 {
			pk, err = common.ParsePublicKey(args[0])
		} else {
			pk, err = walletKey()
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), common.StandardAddress(pk))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(addressCommand)
}
