package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Keyur279/Sia-Cli-tool/pkg/coinselection"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/simulation"
	"github.com/Keyur279/Sia-Cli-tool/pkg/utils"
	"github.com/spf13/cobra"
)

var simOptions struct {
	startingSet string
	strategy    string
	feeRate     string
	maxInputs   int
	limit       int
}

// simCommand replays a payment history against a coin selection strategy
var simCommand = &cobra.Command{
	Use:   "simulate <history.csv>",
	Short: "Runs coin selection simulation",
	Long: `Replays a CSV of hastings amounts, positive for received and negative
for sent payments, and reports fees, change and input counts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer utils.IgnoreErrorOn(history.Close)

		var seed io.Reader
		if simOptions.startingSet != "" {
			f, err := os.Open(simOptions.startingSet)
			if err != nil {
				return err
			}
			defer utils.IgnoreErrorOn(f.Close)
			seed = f
		}

		selector, err := coinselection.New(simOptions.strategy, simOptions.maxInputs)
		if err != nil {
			return err
		}
		rate, err := common.ParseCurrency(simOptions.feeRate)
		if err != nil {
			return err
		}

		sim, err := simulation.NewSimulation(history, seed, simulation.Options{
			Selector: selector,
			FeeRate:  rate,
			Limit:    simOptions.limit,
		}, logger)
		if err != nil {
			return err
		}
		stats, err := sim.Run(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sent %d, received %d, failed %d\n", stats.Sent, stats.Received, stats.Failed)
		fmt.Fprintf(out, "avg fee %.0f H, avg change %.0f H, avg inputs %.2f\n", stats.AvgFee, stats.AvgChange, stats.AvgInputs)
		fmt.Fprintf(out, "balance %s in %d outputs\n", stats.Balance.HumanString(), stats.UTXOs)
		return nil
	},
}

func init() {
	flags := simCommand.Flags()
	flags.StringVar(&simOptions.startingSet, "starting-set", "", "CSV of outputs the wallet starts with")
	flags.StringVar(&simOptions.strategy, "strategy", coinselection.StrategyLargestFirst, "coin selection strategy")
	flags.StringVar(&simOptions.feeRate, "fee-rate", "0", "fee rate in hastings per byte")
	flags.IntVar(&simOptions.maxInputs, "max-inputs", 0, "maximum number of inputs (0 means no limit)")
	flags.IntVar(&simOptions.limit, "limit", 0, "replay at most this many transactions")
	RootCmd.AddCommand(simCommand)
}
