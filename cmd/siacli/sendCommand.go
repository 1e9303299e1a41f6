package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/broadcaster"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/handoff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sendOptions selectionOptions

// newPrompter is replaced in tests.
var newPrompter = func(cmd *cobra.Command) handoff.Prompter {
	return &handoff.ConsolePrompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

// sendCommand builds, signs and broadcasts a transaction in one run
var sendCommand = &cobra.Command{
	Use:   "send <address> <amount> [<address> <amount>...]",
	Short: "Builds a transaction, waits for the signature and broadcasts it",
	Long: `Builds a transaction paying each address the given amount, prints the
blob for the offline signer and waits for the signature on stdin. An empty
line cancels without broadcasting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service()
		pending, err := prepareTransaction(cmd.Context(), svc, &sendOptions, args)
		if err != nil {
			return err
		}

		outcome, err := handoff.Await(newPrompter(cmd), pending)
		if err != nil {
			return errors.Wrap(err, "failed to read signature")
		}
		if outcome.Cancelled {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing was broadcast.")
			return nil
		}
		return finalizeAndSubmit(cmd.Context(), svc, pending, outcome.Signature, cmd.OutOrStdout())
	},
}

// prepareTransaction fetches the wallet state, selects inputs and
// serializes the unsigned transaction.
func prepareTransaction(ctx context.Context, svc blockchain.Service, opts *selectionOptions, args []string) (*handoff.Pending, error) {
	pk, err := walletKey()
	if err != nil {
		return nil, err
	}
	from := common.StandardAddress(pk)
	req, err := opts.request(from, args)
	if err != nil {
		return nil, err
	}
	estimator, err := opts.estimator(svc)
	if err != nil {
		return nil, err
	}

	res, err := estimator.EstimateFees(ctx, req)
	if err != nil {
		return nil, err
	}
	pending, err := handoff.Prepare(handoff.Request{
		Inputs:    res.Inputs(),
		Outputs:   res.Outputs,
		Fee:       res.Fee,
		PublicKey: pk,
		Basis:     res.Basis,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("prepared transaction",
		zap.String("id", pending.ID),
		zap.Stringer("fee", res.Fee),
		zap.Uint64("size", res.Size))
	return pending, nil
}

func finalizeAndSubmit(ctx context.Context, svc blockchain.Service, pending *handoff.Pending, signature string, out io.Writer) error {
	txn, err := pending.Finalize(signature)
	if err != nil {
		return err
	}
	basis, err := broadcaster.New(svc, logger.Named("broadcaster")).Submit(ctx, common.StandardAddress(pending.PublicKey), txn)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Broadcast %s (%s sent, fee %s) at %s\n",
		pending.ID, pending.Total().HumanString(), pending.Fee.HumanString(), basis)
	return nil
}

func init() {
	sendOptions.register(sendCommand.Flags())
	RootCmd.AddCommand(sendCommand)
}
