package audit

import "time"

// Действия, которые попадают в журнал
const (
	ActionLogin        = "auth.login"
	ActionLoginFailed  = "auth.login_failed"
	ActionLogout       = "auth.logout"
	ActionRegister     = "users.register"
	ActionUserStatus   = "users.status"
	ActionUserDelete   = "users.delete"
	ActionDBConfigSave = "dbconfig.save"
	ActionDBConfigTest = "dbconfig.test"
)

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailed  = "FAILED"
)

type Event struct {
	ID        string    `json:"id"`                 // UUID события
	TraceID   string    `json:"trace_id,omitempty"` // Сквозной ID запроса
	Actor     string    `json:"actor"`              // Кто делал
	Action    string    `json:"action"`             // Что делал
	Target    string    `json:"target,omitempty"`   // Над чем
	Outcome   string    `json:"outcome"`            // "SUCCESS", "FAILED"
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
