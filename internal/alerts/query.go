package alerts

import (
	"cmp"
	"slices"
	"strings"

	"github.com/xela07ax/snortview/internal/domain"
)

const DefaultSortField = "datetime_fix"

// sortKey сравнивает два алерта по одному полю: строки побайтно, числа численно
type sortKey func(a, b *domain.Alert) int

func textKey(get func(*domain.Alert) string) sortKey {
	return func(a, b *domain.Alert) int { return strings.Compare(get(a), get(b)) }
}

func numKey(get func(*domain.Alert) int) sortKey {
	return func(a, b *domain.Alert) int { return cmp.Compare(get(a), get(b)) }
}

var sortKeys = map[string]sortKey{
	"id":           numKey(func(a *domain.Alert) int { return a.ID }),
	"timestamp":    textKey(func(a *domain.Alert) string { return a.Timestamp }),
	"iface":        numKey(func(a *domain.Alert) int { return a.Iface }),
	"src_addr":     textKey(func(a *domain.Alert) string { return a.SrcAddr }),
	"src_port":     numKey(func(a *domain.Alert) int { return a.SrcPort }),
	"dst_addr":     textKey(func(a *domain.Alert) string { return a.DstAddr }),
	"dst_port":     numKey(func(a *domain.Alert) int { return a.DstPort }),
	"proto":        textKey(func(a *domain.Alert) string { return a.Proto }),
	"action":       textKey(func(a *domain.Alert) string { return a.Action }),
	"msg":          textKey(func(a *domain.Alert) string { return a.Msg }),
	"priority":     numKey(func(a *domain.Alert) int { return a.Priority }),
	"class":        textKey(func(a *domain.Alert) string { return a.Class }),
	"sid":          numKey(func(a *domain.Alert) int { return a.SID }),
	"rule":         textKey(func(a *domain.Alert) string { return a.Rule }),
	"b64_data":     textKey(func(a *domain.Alert) string { return a.B64Data }),
	"datetime":     textKey(func(a *domain.Alert) string { return a.Datetime }),
	"datetime_fix": textKey(func(a *domain.Alert) string { return a.DatetimeFix }),
}

// IsSortField — поле можно использовать в AlertQuery.SortField
func IsSortField(field string) bool {
	_, ok := sortKeys[field]
	return ok
}

// Query фильтрует, сортирует и режет набор на страницу.
// Total — размер отфильтрованного набора до пагинации. Страница за пределами набора — пустой Data.
func (s *Store) Query(q domain.AlertQuery) domain.AlertPage {
	matched := s.filter(q.Filter)
	sortAlerts(matched, q.SortField, q.SortOrder)

	return domain.AlertPage{
		Data:  paginate(matched, q.Page, q.PerPage),
		Total: len(matched),
	}
}

// filter всегда возвращает новый слайс, исходный набор не трогаем
func (s *Store) filter(f domain.AlertFilter) []domain.Alert {
	m := newMatcher(f)
	out := make([]domain.Alert, 0)
	for i := range s.alerts {
		if m.match(&s.alerts[i]) {
			out = append(out, s.alerts[i])
		}
	}
	return out
}

type matcher struct {
	f    domain.AlertFilter
	term string // SearchTerm в нижнем регистре
}

func newMatcher(f domain.AlertFilter) matcher {
	return matcher{f: f, term: strings.ToLower(f.SearchTerm)}
}

func (m matcher) match(a *domain.Alert) bool {
	f := m.f
	if !f.Range.Contains(a.At) {
		return false
	}
	if f.SrcAddr != "" && !strings.Contains(a.SrcAddr, f.SrcAddr) {
		return false
	}
	if f.DstAddr != "" && !strings.Contains(a.DstAddr, f.DstAddr) {
		return false
	}
	if f.DstPort != nil && a.DstPort != *f.DstPort {
		return false
	}
	if f.Proto != "" && a.Proto != f.Proto {
		return false
	}
	if f.Action != "" && a.Action != f.Action {
		return false
	}
	if m.term != "" {
		text := a.Msg
		if f.SearchField == domain.SearchClass {
			text = a.Class
		}
		if !strings.Contains(strings.ToLower(text), m.term) {
			return false
		}
	}
	return true
}

// sortAlerts — стабильная сортировка без вторичного ключа.
// Неизвестное поле — DefaultSortField, пустой порядок — desc.
func sortAlerts(list []domain.Alert, field string, order domain.SortOrder) {
	key, ok := sortKeys[field]
	if !ok {
		key = sortKeys[DefaultSortField]
	}
	desc := order != domain.SortAsc

	slices.SortStableFunc(list, func(a, b domain.Alert) int {
		c := key(&a, &b)
		if desc {
			return -c
		}
		return c
	})
}

func paginate(list []domain.Alert, page, perPage int) []domain.Alert {
	if page < 1 || perPage < 1 {
		return []domain.Alert{}
	}
	// Сравниваем номер страницы до умножения: огромный page переполнил бы (page-1)*perPage
	pages := len(list) / perPage
	if len(list)%perPage != 0 {
		pages++
	}
	if page > pages {
		return []domain.Alert{}
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(list))
	return list[start:end]
}
