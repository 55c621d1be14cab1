package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/financas-casa/internal/domain"
)

// Month es un mes calendario de un año (siempre el día 1, 00:00 UTC).
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth construye el mes normalizando desbordes (mes 13 => enero del año siguiente).
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf devuelve el mes al que pertenece t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start devuelve el primer día del mes.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths avanza (o retrocede) n meses.
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// LastDay devuelve el número de días del mes.
func (m Month) LastDay() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day devuelve la fecha del día indicado dentro del mes; si el día no existe se usa el último día del mes.
func (m Month) Day(day int) time.Time {
	if last := m.LastDay(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Before indica si m es anterior a n.
func (m Month) Before(n Month) bool {
	return m.Start().Before(n.Start())
}

// Contains indica si la fecha cae dentro del mes.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// String formatea como MM/YYYY (formato de las pestañas del visor y de los límites).
func (m Month) String() string {
	return fmt.Sprintf("%02d/%04d", int(m.Month), m.Year)
}

// ParseMonthYear interpreta un texto "MM/YYYY".
func ParseMonthYear(s string) (Month, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("%w: mes %q, formato esperado MM/YYYY", domain.ErrValidation, s)
	}
	mm, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || mm < 1 || mm > 12 {
		return Month{}, fmt.Errorf("%w: mes %q fuera de rango", domain.ErrValidation, parts[0])
	}
	yyyy, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || yyyy < 1 {
		return Month{}, fmt.Errorf("%w: año %q inválido", domain.ErrValidation, parts[1])
	}
	return Month{Year: yyyy, Month: time.Month(mm)}, nil
}
