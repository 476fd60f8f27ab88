package service

import (
	"context"
	"time"

	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
	"go.uber.org/zap"
)

// AlertEngine — хранилище алертов с движком запросов и агрегатов
type AlertEngine interface {
	Query(q domain.AlertQuery) domain.AlertPage
	Get(id int) (domain.Alert, error)
	Stats(r domain.DateRange) domain.DashboardStats
	Fingerprint() string
}

// StatsCache мемоизирует статистику дашборда по диапазону дат
type StatsCache interface {
	Get(ctx context.Context, key string) (domain.DashboardStats, bool, error)
	Set(ctx context.Context, key string, stats domain.DashboardStats) error
}

type AlertDelays struct {
	Alerts time.Duration
	Stats  time.Duration
}

type AlertService struct {
	engine  AlertEngine
	cache   StatsCache // nil — без кэша
	delays  AlertDelays
	metrics *infra.Metrics
	logger  *zap.Logger
}

func NewAlertService(engine AlertEngine, cache StatsCache, delays AlertDelays, metrics *infra.Metrics, logger *zap.Logger) *AlertService {
	return &AlertService{
		engine:  engine,
		cache:   cache,
		delays:  delays,
		metrics: metrics,
		logger:  logger.Named("alert-service"),
	}
}

func (s *AlertService) FetchAlerts(ctx context.Context, q domain.AlertQuery) (domain.AlertPage, error) {
	if err := infra.SimulateLatency(ctx, s.delays.Alerts); err != nil {
		return domain.AlertPage{}, err
	}

	start := time.Now()
	page := s.engine.Query(q)
	s.metrics.QueryDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())

	return page, nil
}

func (s *AlertService) GetAlert(ctx context.Context, id int) (domain.Alert, error) {
	if err := infra.SimulateLatency(ctx, s.delays.Alerts); err != nil {
		return domain.Alert{}, err
	}
	return s.engine.Get(id)
}

// GetDashboardStats считает агрегаты, по возможности отдавая их из кэша.
// Ошибка кэша не ломает запрос: считаем заново и пишем в лог.
func (s *AlertService) GetDashboardStats(ctx context.Context, r domain.DateRange) (domain.DashboardStats, error) {
	if err := infra.SimulateLatency(ctx, s.delays.Stats); err != nil {
		return domain.DashboardStats{}, err
	}

	key := s.statsCacheKey(r)
	if s.cache != nil {
		stats, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.metrics.StatsCache.WithLabelValues("error").Inc()
			s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			s.metrics.StatsCache.WithLabelValues("hit").Inc()
			return stats, nil
		default:
			s.metrics.StatsCache.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	stats := s.engine.Stats(r)
	s.metrics.QueryDuration.WithLabelValues("stats").Observe(time.Since(start).Seconds())

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats); err != nil {
			s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return stats, nil
}

func (s *AlertService) statsCacheKey(r domain.DateRange) string {
	return infra.StatsKey(s.engine.Fingerprint(), formatBound(r.Start), formatBound(r.End))
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
