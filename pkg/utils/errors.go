package utils

import (
	"go.uber.org/zap"
)

// customization points
var logger = zap.L

// IgnoreError simple helper that just logs the error and ignores it
func IgnoreError(err error) {
	if err != nil { // unlikely
		logger().Warn("error ignored", zap.Error(err))
	}
}

// IgnoreErrorOn simple helper that is aimed to use with `defer`
func IgnoreErrorOn(f func() error) {
	IgnoreError(f())
}

// PanicOnError simple helper that panic on non-nil error
func PanicOnError(err error) {
	if err != nil { // unlikely
		panic(err)
	}
}
