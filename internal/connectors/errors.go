package connectors

import (
	"errors"
	"fmt"
)

// ErrIncompleteConfig — не заполнены host, database или username. Повторять бессмысленно.
var ErrIncompleteConfig = errors.New("fill in all required fields (host, database and username)")

// ErrBreakerOpen — предохранитель разомкнут, проверка не выполнялась
var ErrBreakerOpen = errors.New("connection test temporarily disabled after repeated failures")

// ConnectError — сервер не ответил или отверг подключение
type ConnectError struct {
	Addr  string
	Cause error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Addr, e.Cause)
}

func (e *ConnectError) Unwrap() error { return e.Cause }
