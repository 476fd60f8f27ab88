package domain

import (
	"errors"
	"time"
)

// Значения action в выгрузках Snort
const (
	ActionAllow = "allow"
	ActionDeny  = "deny"
	ActionAlert = "alert"
	ActionBlock = "block"
	ActionDrop  = "drop"
)

var (
	Actions   = []string{ActionAllow, ActionDeny, ActionAlert, ActionBlock, ActionDrop}
	Protocols = []string{"TCP", "UDP", "ICMP", "HTTP", "DNS"}
)

// DatetimeFixLayout — сортируемый формат поля Alert.DatetimeFix
const DatetimeFixLayout = "2006-01-02 15:04:05.000000"

var ErrAlertNotFound = errors.New("alert not found")

// IsBlockingAction — трафик был остановлен сенсором (deny/block/drop)
func IsBlockingAction(action string) bool {
	return action == ActionDeny || action == ActionBlock || action == ActionDrop
}

// Alert — одна запись Snort. Неизменяема после генерации.
type Alert struct {
	ID          int    `json:"id"`
	Timestamp   string `json:"timestamp"` // MM/DD-HH:MM:SS.micro (raw Snort)
	Iface       int    `json:"iface"`
	SrcAddr     string `json:"src_addr"`
	SrcPort     int    `json:"src_port"`
	DstAddr     string `json:"dst_addr"`
	DstPort     int    `json:"dst_port"`
	Proto       string `json:"proto"`
	Action      string `json:"action"`
	Msg         string `json:"msg"`
	Priority    int    `json:"priority"`
	Class       string `json:"class"`
	SID         int    `json:"sid"`
	Rule        string `json:"rule"` // gid:sid:rev
	B64Data     string `json:"b64_data"`
	Datetime    string `json:"datetime"`     // DD/MM/YYYY HH:MM:SS:micro
	DatetimeFix string `json:"datetime_fix"` // DatetimeFixLayout

	// At — распарсенный DatetimeFix, нужен фильтру по датам
	At time.Time `json:"-"`
}

// DateRange включает обе границы. Нулевая граница — открытый интервал с этой стороны.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchField — по какому текстовому полю идет полнотекстовый поиск
type SearchField string

const (
	SearchMsg   SearchField = "msg"
	SearchClass SearchField = "class"
)

type AlertFilter struct {
	Range       DateRange
	SrcAddr     string
	DstAddr     string
	DstPort     *int // nil — любой порт
	Proto       string
	Action      string
	SearchTerm  string
	SearchField SearchField
}

type AlertQuery struct {
	Page      int
	PerPage   int
	Filter    AlertFilter
	SortField string
	SortOrder SortOrder
}

type AlertPage struct {
	Data  []Alert `json:"data"`
	Total int     `json:"total"`
}
