package feerate

import (
	"context"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"go.uber.org/zap"
)

type FeeRater interface {
	// GetFeeRate returns the current fee rate in hastings per byte
	GetFeeRate(ctx context.Context) (common.Currency, error)
}

// Static always answers with the same rate.
type Static common.Currency

func (s Static) GetFeeRate(context.Context) (common.Currency, error) {
	return common.Currency(s), nil
}

// Capped limits the rate reported by Rater to Max. A zero Max disables the
// cap.
type Capped struct {
	Rater  FeeRater
	Max    common.Currency
	Logger *zap.Logger
}

// NewCapped wraps rater. logger may be nil.
func NewCapped(rater FeeRater, max common.Currency, logger *zap.Logger) *Capped {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Capped{Rater: rater, Max: max, Logger: logger}
}

func (c *Capped) GetFeeRate(ctx context.Context) (common.Currency, error) {
	rate, err := c.Rater.GetFeeRate(ctx)
	if err != nil {
		return common.ZeroCurrency, err
	}
	if !c.Max.IsZero() && rate.Cmp(c.Max) > 0 {
		c.Logger.Warn("fee rate above configured maximum, capping",
			zap.Stringer("rate", rate), zap.Stringer("max", c.Max))
		return c.Max, nil
	}
	return rate, nil
}
