package cmd

import (
	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/coinselection"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/feerate"
	"github.com/Keyur279/Sia-Cli-tool/pkg/fees"
	"github.com/Keyur279/Sia-Cli-tool/pkg/handoff"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var errNoPublicKey = errors.New("no public key: pass --public-key or set SIACLI_PUBLIC_KEY")

// service is replaced in tests.
var service = func() blockchain.Service {
	return blockchain.NewClient(cfg.APIAddr, cfg.APIPassword, logger.Named("api"))
}

func walletKey() (common.PublicKey, error) {
	if cfg.PublicKey == nil {
		return common.PublicKey{}, errNoPublicKey
	}
	return *cfg.PublicKey, nil
}

func openStore() (*handoff.Store, error) {
	return handoff.OpenStore(cfg.PendingDBPath())
}

// selectionOptions are the flags shared by send and prepare.
type selectionOptions struct {
	fee           string
	feeRate       string
	changeAddress string
	strategy      string
	maxInputs     int
}

func (o *selectionOptions) estimator(svc blockchain.Service) (*fees.Estimator, error) {
	strategy := o.strategy
	if strategy == "" {
		strategy = cfg.Strategy
	}
	maxInputs := o.maxInputs
	if maxInputs == 0 {
		maxInputs = cfg.MaxInputs
	}
	selector, err := coinselection.New(strategy, maxInputs)
	if err != nil {
		return nil, err
	}

	var rater feerate.FeeRater = svc
	if o.feeRate != "" {
		rate, err := common.ParseCurrency(o.feeRate)
		if err != nil {
			return nil, errors.Wrap(err, "invalid --fee-rate")
		}
		rater = feerate.Static(rate)
	}
	rater = feerate.NewCapped(rater, cfg.MaxFeeRate, logger)

	return &fees.Estimator{
		Feerater: rater,
		Selector: selector,
		UTXOs:    svc,
		Chain:    svc,
		Logger:   logger.Named("estimator"),
	}, nil
}

// request builds a payment from address/amount argument pairs.
func (o *selectionOptions) request(from common.Address, args []string) (fees.Request, error) {
	req := fees.Request{From: from}
	if len(args) == 0 || len(args)%2 != 0 {
		return req, errors.New("expected <address> <amount> pairs")
	}
	for i := 0; i < len(args); i += 2 {
		addr, err := common.ParseAddress(args[i])
		if err != nil {
			return req, errors.Wrapf(err, "invalid recipient %q", args[i])
		}
		amount, err := common.ParseCurrency(args[i+1])
		if err != nil {
			return req, errors.Wrapf(err, "invalid amount %q", args[i+1])
		}
		req.Recipients = append(req.Recipients, common.TransactionOutput{Address: addr, Value: amount})
	}
	if o.changeAddress != "" {
		addr, err := common.ParseAddress(o.changeAddress)
		if err != nil {
			return req, errors.Wrap(err, "invalid --change-address")
		}
		req.ChangeAddress = addr
	}
	if o.fee != "" {
		fee, err := common.ParseCurrency(o.fee)
		if err != nil {
			return req, errors.Wrap(err, "invalid --fee")
		}
		req.FixedFee = &fee
	}
	return req, nil
}

func (o *selectionOptions) register(c *pflag.FlagSet) {
	c.StringVar(&o.fee, "fee", "", "fixed miner fee, e.g. 0.01SC (default: estimated from the fee rate)")
	c.StringVar(&o.feeRate, "fee-rate", "", "fee rate in hastings per byte (default: from the API)")
	c.StringVar(&o.changeAddress, "change-address", "", "address receiving the change (default: the wallet address)")
	c.StringVar(&o.strategy, "strategy", "", "coin selection strategy: largest-first, in-order or random")
	c.IntVar(&o.maxInputs, "max-inputs", 0, "maximum number of inputs (0 means no limit)")
}
