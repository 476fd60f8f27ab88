package service

import (
	"context"
	"fmt"

	"github.com/xela07ax/snortview/internal/audit"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditService struct {
	repo audit.Reader
}

func NewAuditService(repo audit.Reader) *AuditService {
	return &AuditService{repo: repo}
}

// FetchLogs отдает последние события, новые первыми. limit <= 0 — значение по умолчанию.
func (s *AuditService) FetchLogs(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)

	logs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("audit_service: failed to fetch logs: %w", err)
	}
	return logs, nil
}
