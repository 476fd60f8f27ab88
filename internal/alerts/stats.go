package alerts

import (
	"slices"
	"strconv"
	"strings"

	"github.com/xela07ax/snortview/internal/domain"
)

// TopN — длина списков топов на дашборде
const TopN = 10

// Stats считает агрегаты дашборда по алертам, попавшим в диапазон дат.
// Каждый вызов проходит весь набор заново, инкрементального состояния нет.
func (s *Store) Stats(r domain.DateRange) domain.DashboardStats {
	src := newCounter()
	dst := newCounter()
	ports := newCounter()
	days := newCounter()

	var total, blocked int
	for i := range s.alerts {
		a := &s.alerts[i]
		if !r.Contains(a.At) {
			continue
		}
		total++

		src.add(a.SrcAddr)
		dst.add(a.DstAddr)
		ports.add(strconv.Itoa(a.DstPort))

		day, _, _ := strings.Cut(a.DatetimeFix, " ")
		days.add(day)

		if domain.IsBlockingAction(a.Action) {
			blocked++
		}
	}

	return domain.DashboardStats{
		TopSourceIPs:        src.top(TopN),
		TopDestinationIPs:   dst.top(TopN),
		TopDestinationPorts: ports.top(TopN),
		BlockedTotal:        blocked,
		EventsByDay:         days.byLabel(),
		Total:               total,
	}
}

// counter помнит порядок первого появления метки: при равных count он и остается
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *counter) top(n int) []domain.TopItem {
	items := make([]domain.TopItem, 0, len(c.order))
	for _, label := range c.order {
		items = append(items, domain.TopItem{Label: label, Count: c.counts[label]})
	}
	slices.SortStableFunc(items, func(a, b domain.TopItem) int {
		return b.Count - a.Count
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func (c *counter) byLabel() []domain.DayCount {
	out := make([]domain.DayCount, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, domain.DayCount{Date: label, Count: c.counts[label]})
	}
	slices.SortFunc(out, func(a, b domain.DayCount) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}
