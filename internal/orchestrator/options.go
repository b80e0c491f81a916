package orchestrator

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rana718/demoseed/internal/sink"
)

const (
	BaseEmployees = 150
	BaseCustomers = 1200

	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

var ErrInvalidOptions = errors.New("invalid orchestrator options")

// RetryPolicy bounds the phase-level retry on unique violations.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Options configures a run. Employees and Customers, when set, replace the
// scaled base counts.
type Options struct {
	ScaleFactor float64
	Employees   *int
	Customers   *int
	Seed        int64
	BatchSize   int
	Retry       RetryPolicy
}

func DefaultOptions() Options {
	return Options{
		ScaleFactor: 1.0,
		BatchSize:   sink.DefaultBatchSize,
		Retry: RetryPolicy{
			MaxAttempts: DefaultMaxAttempts,
			Backoff:     DefaultBackoff,
		},
	}
}

func (o Options) Validate() error {
	if !(o.ScaleFactor > 0) {
		return fmt.Errorf("%w: scale factor must be positive, got %v", ErrInvalidOptions, o.ScaleFactor)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidOptions, o.BatchSize)
	}
	if o.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidOptions, o.Retry.MaxAttempts)
	}
	if o.Retry.Backoff < 0 {
		return fmt.Errorf("%w: backoff must not be negative", ErrInvalidOptions)
	}
	if o.Employees != nil && *o.Employees < 0 {
		return fmt.Errorf("%w: employee count must not be negative", ErrInvalidOptions)
	}
	if o.Customers != nil && *o.Customers < 0 {
		return fmt.Errorf("%w: customer count must not be negative", ErrInvalidOptions)
	}
	return nil
}

func (o Options) EmployeeCount() int {
	if o.Employees != nil {
		return *o.Employees
	}
	return int(BaseEmployees * o.ScaleFactor)
}

func (o Options) CustomerCount() int {
	if o.Customers != nil {
		return *o.Customers
	}
	return int(BaseCustomers * o.ScaleFactor)
}
