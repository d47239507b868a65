package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"parking-reservation/internal/pkg/errs"
)

var ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")

type RetryPolicy struct {
	MaxRetries int
	Base       time.Duration
	// Retryable decides whether a failed attempt may run again.
	Retryable func(error) bool
	// OnRetry is called before each wait, if set.
	OnRetry func(attempt int, err error)
}

func DefaultRetryPolicy(retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		Base:       100 * time.Millisecond,
		Retryable:  retryable,
	}
}

// RunWithRetry runs attempt until it succeeds, fails with a non-retryable
// error, the retries run out, or ctx is done. Each call to attempt must own
// its whole transaction.
func RunWithRetry(ctx context.Context, p RetryPolicy, attempt func(ctx context.Context) error) error {
	for n := 0; n <= p.MaxRetries; n++ {
		err := attempt(ctx)
		if err == nil {
			return nil
		}

		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if n == p.MaxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", n+1,
				"error", err.Error())
			return errs.Mark(err, ErrMaxRetriesExceeded)
		}

		waitTime := CalculateBackoff(n, p.Base)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", n+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())
		if p.OnRetry != nil {
			p.OnRetry(n+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return ErrMaxRetriesExceeded
}

// CalculateBackoff doubles base per attempt and adds up to 20% jitter.
func CalculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}
