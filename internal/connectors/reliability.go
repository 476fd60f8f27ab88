package connectors

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker"
	"github.com/xela07ax/snortview/internal/domain"
	"go.uber.org/zap"
)

type ReliabilityOptions struct {
	Attempts       uint
	AttemptTimeout time.Duration
	MaxRequests    uint32
	Interval       time.Duration
	Timeout        time.Duration // через сколько CB попробует "закрыться"
	FailureLimit   uint32        // подряд идущих отказов до размыкания

	// OnStateChange — для метрик: 0 closed, 1 half-open, 2 open
	OnStateChange func(name string, state float64)
}

// ReliabilityWrapper оборачивает живую проверку в Circuit Breaker и повторы
type ReliabilityWrapper struct {
	next   ConnectionTester
	cb     *gobreaker.CircuitBreaker
	opts   ReliabilityOptions
	logger *zap.Logger
}

func NewReliabilityWrapper(next ConnectionTester, opts ReliabilityOptions, logger *zap.Logger) *ReliabilityWrapper {
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 5 * time.Second
	}
	if opts.FailureLimit == 0 {
		opts.FailureLimit = 5
	}
	logger = logger.Named("db-tester")

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "db-connection-test",
		MaxRequests: opts.MaxRequests,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureLimit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if opts.OnStateChange != nil {
				opts.OnStateChange(name, float64(to))
			}
		},
	})

	return &ReliabilityWrapper{next: next, cb: cb, opts: opts, logger: logger}
}

func (w *ReliabilityWrapper) Test(ctx context.Context, cfg domain.DatabaseConfig) error {
	// Неполный конфиг — ошибка пользователя, а не сервера: не ретраим и не трогаем CB
	if cfg.MissingRequired() {
		return ErrIncompleteConfig
	}

	_, err := w.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(w.opts.Attempts),
			retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
				return retry.BackOffDelay(n, err, config)
			}),
		)

		return nil, r.Do(func() error {
			tCtx, cancel := context.WithTimeout(ctx, w.opts.AttemptTimeout)
			defer cancel()
			return w.next.Test(tCtx, cfg)
		})
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrBreakerOpen
	}
	return err
}
