package audit

/*
Файл recorder.go — журнал действий операторов (Audit Trail) SnortView.

- Non-blocking Logging: хендлеры кладут событие в буферизованный канал и сразу отвечают,
  запись в хранилище идет в отдельном воркере.
- Batching: события копятся и пишутся пачкой по таймеру или при достижении BatchSize.
- Drain Pattern: Stop закрывает канал, воркер вычитывает остаток и делает финальный flush.
*/

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage определяет, куда физически сохраняются события
type Storage interface {
	WriteBatch(ctx context.Context, events []Event) error
}

// Reader отдает последние события для страницы аудита
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Event, error)
}

type Auditor interface {
	Log(event Event)
}

// Discard — Auditor, который ничего не пишет
type Discard struct{}

func (Discard) Log(Event) {}

type Options struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = 1000
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = 500 * time.Millisecond
	}
	return o
}

type Recorder struct {
	ch     chan Event
	repo   Storage
	opts   Options
	logger *zap.Logger
	wg     sync.WaitGroup
	closed atomic.Bool
	mu     sync.RWMutex // Log держит RLock, Stop берет Lock перед close(ch)
}

func NewRecorder(repo Storage, opts Options, logger *zap.Logger) *Recorder {
	opts = opts.withDefaults()
	return &Recorder{
		ch:     make(chan Event, opts.BufferSize),
		repo:   repo,
		opts:   opts,
		logger: logger.With(zap.String("mod", "audit")),
	}
}

func (r *Recorder) Start() {
	r.wg.Add(1)
	go r.worker()
}

// Stop «запирает» вход и ждет, пока воркер всё допишет
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.closed.Swap(true) {
		r.mu.Unlock()
		return
	}
	r.logger.Info("stopping auditor: closing channel and flushing buffer...")
	close(r.ch)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("auditor stopped gracefully")
}

func (r *Recorder) Log(event Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed.Load() {
		r.logger.Warn("audit event dropped: auditor is stopping", zap.String("id", event.ID))
		return
	}

	// Load Shedding: при переполненном буфере событие уходит только в лог
	select {
	case r.ch <- event:
	default:
		r.logger.Error("audit_buffer_overflow",
			zap.String("actor", event.Actor),
			zap.String("action", event.Action),
			zap.String("trace_id", event.TraceID),
		)
	}
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	batch := make([]Event, 0, r.opts.BatchSize)
	ticker := time.NewTicker(r.opts.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Background: контекст запроса к этому моменту уже закрыт
		if err := r.repo.WriteBatch(context.Background(), batch); err != nil {
			r.logger.Error("audit flush failed", zap.Int("events", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case event, ok := <-r.ch:
			if !ok {
				flush()
				r.logger.Info("audit worker finished")
				return
			}
			batch = append(batch, event)
			if len(batch) >= r.opts.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
