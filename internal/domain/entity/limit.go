package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Limit es el tope de gastos mensual de una persona. Único por (MonthStart, Person).
type Limit struct {
	ID         int64
	MonthStart time.Time
	Person     Person
	Amount     decimal.Decimal
}

// Month devuelve el mes al que aplica el límite.
func (l *Limit) Month() Month {
	return MonthOf(l.MonthStart)
}
