package alerts

/*
Пакет alerts держит набор алертов в памяти и отвечает на два вида запросов:
постраничная выборка с фильтрами/сортировкой (Query) и агрегаты для дашборда (Stats).

Набор создается один раз при старте и дальше только читается, поэтому
Store безопасен для конкурентного чтения без блокировок.
*/

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/xela07ax/snortview/internal/domain"
)

type Store struct {
	alerts      []domain.Alert
	byID        map[int]int // id -> индекс в alerts
	fingerprint string
}

// NewStore забирает владение слайсом. ID должны быть уникальны, DatetimeFix — в формате DatetimeFixLayout.
func NewStore(list []domain.Alert) (*Store, error) {
	s := &Store{
		alerts: list,
		byID:   make(map[int]int, len(list)),
	}

	for i := range s.alerts {
		a := &s.alerts[i]
		if _, dup := s.byID[a.ID]; dup {
			return nil, fmt.Errorf("alerts: duplicate id %d", a.ID)
		}
		s.byID[a.ID] = i

		if a.At.IsZero() {
			at, err := time.Parse(domain.DatetimeFixLayout, a.DatetimeFix)
			if err != nil {
				return nil, fmt.Errorf("alerts: id %d: bad datetime_fix %q: %w", a.ID, a.DatetimeFix, err)
			}
			a.At = at
		}
	}

	s.fingerprint = fingerprint(s.alerts)
	return s, nil
}

// fingerprint — xxhash по полям, которые участвуют в агрегатах.
// Разные count/seed дают разные наборы, а значит и разные отпечатки.
func fingerprint(list []domain.Alert) string {
	d := xxhash.New()
	for i := range list {
		a := &list[i]
		d.WriteString(strconv.Itoa(a.ID))
		d.WriteString(a.DatetimeFix)
		d.WriteString(a.SrcAddr)
		d.WriteString(a.DstAddr)
		d.WriteString(strconv.Itoa(a.DstPort))
		d.WriteString(a.Action)
		d.WriteString("\n")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Fingerprint идентифицирует набор алертов, им помечаются ключи внешнего кэша
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

func (s *Store) Len() int {
	return len(s.alerts)
}

func (s *Store) Get(id int) (domain.Alert, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Alert{}, domain.ErrAlertNotFound
	}
	return s.alerts[i], nil
}
