package service

import (
	"context"

	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/infra"
	"github.com/xela07ax/snortview/internal/infra/auth"
)

const anonymousActor = "anonymous"

// actorFromContext — логин из claims запроса, для журнала и логов
func actorFromContext(ctx context.Context) string {
	if claims := auth.ClaimsFromContext(ctx); claims != nil {
		return claims.Username
	}
	return anonymousActor
}

// record заполняет actor и trace_id из контекста и отдает событие в журнал
func record(ctx context.Context, a audit.Auditor, e audit.Event) {
	if e.Actor == "" {
		e.Actor = actorFromContext(ctx)
	}
	e.TraceID = infra.TraceIDFromContext(ctx)
	a.Log(e)
}

func outcome(err error) string {
	if err != nil {
		return audit.OutcomeFailed
	}
	return audit.OutcomeSuccess
}
