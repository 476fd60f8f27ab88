package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/xela07ax/snortview/internal/alerts"
	"github.com/xela07ax/snortview/internal/domain"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	dateOnly       = "2006-01-02"
)

// parseAlertQuery разбирает параметры /api/v1/alerts.
// page < 1 становится 1, perPage ограничен maxPerPage.
func parseAlertQuery(v url.Values) (domain.AlertQuery, error) {
	q := domain.AlertQuery{Page: 1, PerPage: defaultPerPage}

	if s := v.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("invalid page %q", s)
		}
		q.Page = max(page, 1)
	}
	if s := v.Get("perPage"); s != "" {
		perPage, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("invalid perPage %q", s)
		}
		if perPage >= 1 {
			q.PerPage = min(perPage, maxPerPage)
		}
	}

	rng, err := parseDateRange(v)
	if err != nil {
		return q, err
	}
	q.Filter.Range = rng

	q.Filter.SrcAddr = v.Get("srcAddr")
	q.Filter.DstAddr = v.Get("dstAddr")
	q.Filter.Proto = v.Get("proto")
	q.Filter.Action = v.Get("action")
	q.Filter.SearchTerm = v.Get("searchTerm")

	if s := v.Get("dstPort"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil || port < 0 || port > 65535 {
			return q, fmt.Errorf("invalid dstPort %q", s)
		}
		q.Filter.DstPort = &port
	}

	switch sf := domain.SearchField(v.Get("searchField")); sf {
	case "":
		q.Filter.SearchField = domain.SearchMsg
	case domain.SearchMsg, domain.SearchClass:
		q.Filter.SearchField = sf
	default:
		return q, fmt.Errorf("invalid searchField %q", sf)
	}

	q.SortField = alerts.DefaultSortField
	if s := v.Get("sortField"); s != "" {
		if !alerts.IsSortField(s) {
			return q, fmt.Errorf("invalid sortField %q", s)
		}
		q.SortField = s
	}

	switch so := domain.SortOrder(v.Get("sortOrder")); so {
	case "":
		q.SortOrder = domain.SortDesc
	case domain.SortAsc, domain.SortDesc:
		q.SortOrder = so
	default:
		return q, fmt.Errorf("invalid sortOrder %q", so)
	}

	return q, nil
}

// parseDateRange читает startDate/endDate. Каждая граница необязательна.
// Дата без времени в endDate означает конец этого дня.
func parseDateRange(v url.Values) (domain.DateRange, error) {
	var r domain.DateRange
	var err error
	if s := v.Get("startDate"); s != "" {
		if r.Start, err = parseBound(s, false); err != nil {
			return r, fmt.Errorf("invalid startDate %q", s)
		}
	}
	if s := v.Get("endDate"); s != "" {
		if r.End, err = parseBound(s, true); err != nil {
			return r, fmt.Errorf("invalid endDate %q", s)
		}
	}
	return r, nil
}

func parseBound(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
