// Package ledger contiene las reglas puras del libro del hogar: fechas de cobro,
// plantillas recurrentes y el plegado de totales mensuales. Sin dependencias de infraestructura.
package ledger

import (
	"time"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
)

// CreditAnchors asocia a cada persona su día de corte de la tarjeta de crédito.
type CreditAnchors map[entity.Person]int

// DefaultCreditAnchors: Yuri cierra el 14 y Marcos el 26.
func DefaultCreditAnchors() CreditAnchors {
	return CreditAnchors{
		entity.PersonYuri:   14,
		entity.PersonMarcos: 26,
	}
}

// FirstChargeDate resuelve la fecha de la primera parcela de una compra.
// Con crédito: si hoy es antes del día de corte, el corte de este mes; si no, el del mes siguiente.
// Una persona sin día de corte configurado conserva la fecha de hoy.
func FirstChargeDate(today time.Time, person entity.Person, paymentMethod string, anchors CreditAnchors) time.Time {
	today = entity.DateOnly(today)
	if entity.NormalizePaymentMethod(paymentMethod) != entity.PaymentCredit {
		return today
	}
	anchor, ok := anchors[person]
	if !ok {
		return today
	}
	month := entity.MonthOf(today)
	if today.Day() < anchor {
		return month.Day(anchor)
	}
	return month.AddMonths(1).Day(anchor)
}

// InstallmentDate devuelve la fecha de la parcela i (1..N): la primera fecha más i-1 meses,
// conservando el día (o el último día del mes si no existe).
func InstallmentDate(first time.Time, i int) time.Time {
	return entity.MonthOf(first).AddMonths(i - 1).Day(first.Day())
}

// DueDate calcula el vencimiento de este ciclo: el día indicado de este mes si todavía
// no pasó (hoy <= día), o el del mes siguiente.
func DueDate(today time.Time, dueDay int) time.Time {
	today = entity.DateOnly(today)
	month := entity.MonthOf(today)
	if today.Day() <= dueDay {
		return month.Day(dueDay)
	}
	return month.AddMonths(1).Day(dueDay)
}

// ReceiptDates devuelve count fechas mensuales consecutivas desde el día indicado del mes de hoy.
func ReceiptDates(today time.Time, day, count int) []time.Time {
	month := entity.MonthOf(today)
	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, month.AddMonths(i).Day(day))
	}
	return dates
}

// ValidDay indica si day es un día del mes aceptable (1..31).
func ValidDay(day int) bool {
	return day >= 1 && day <= 31
}
