package rabbit

import (
	"errors"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

// isPermanentError returns true if redelivering the message cannot help.
func isPermanentError(err error) bool {
	return oneOf(err, types.ErrEmptyDataset, types.ErrMissingColumn, types.ErrMalformedCell)
}

func oneOf(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for i := range n {
		if err = fn(); err == nil {
			return nil
		}
		if i < n-1 {
			time.Sleep(sleep)
		}
	}
	return err
}
