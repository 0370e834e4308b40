package attendance

import (
	"sort"
	"time"
)

// SortOrder orden de salida de los registros.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

// ParseSortOrder acepta "asc" / "desc"; cualquier otro valor es descendente.
func ParseSortOrder(s string) SortOrder {
	if s == "asc" {
		return Ascending
	}
	return Descending
}

// AccumulatedRecord registro diario con el banco de horas acumulado del usuario
// hasta ese día, inclusive.
type AccumulatedRecord struct {
	DailyRecord
	Accumulated time.Duration
}

// AccumulatedHours banco de horas en decimal.
func (r AccumulatedRecord) AccumulatedHours() float64 { return r.Accumulated.Hours() }

// Accumulate calcula el saldo acumulado por usuario. La pasada de acumulación
// siempre recorre los días en orden ascendente; el resultado se devuelve en el
// orden pedido.
func Accumulate(records []DailyRecord, order SortOrder) []AccumulatedRecord {
	out := make([]AccumulatedRecord, len(records))
	for i, r := range records {
		out[i] = AccumulatedRecord{DailyRecord: r}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ki, kj := out[i].DateKey(), out[j].DateKey(); ki != kj {
			return ki < kj
		}
		return out[i].UserID < out[j].UserID
	})

	running := make(map[string]time.Duration)
	for i := range out {
		total := running[out[i].UserID] + out[i].Balance
		out[i].Accumulated = total
		running[out[i].UserID] = total
	}

	if order == Descending {
		sort.SliceStable(out, func(i, j int) bool { return newerFirst(out[i].DailyRecord, out[j].DailyRecord) })
	}
	return out
}

// Filter criterios para recortar registros antes de acumular.
// From y To son inclusivos y se comparan por fecha de calendario en su propia
// zona horaria (ver CalendarDay).
type Filter struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

// Apply devuelve los registros que cumplen el filtro, en el mismo orden.
func (f Filter) Apply(records []DailyRecord) []DailyRecord {
	var from, to string
	if f.From != nil {
		from = f.From.Format(DateLayout)
	}
	if f.To != nil {
		to = f.To.Format(DateLayout)
	}
	out := make([]DailyRecord, 0, len(records))
	for _, r := range records {
		if f.UserID != "" && r.UserID != f.UserID {
			continue
		}
		key := r.DateKey()
		if from != "" && key < from {
			continue
		}
		if to != "" && key > to {
			continue
		}
		out = append(out, r)
	}
	return out
}
