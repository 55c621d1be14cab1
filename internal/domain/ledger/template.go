package ledger

import (
	"strconv"
	"time"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Template es una entrada recurrente deducida de las filas existentes: un salario
// o una Conta con total_parcelas = 0, agrupada por descripción, valor, persona,
// método de pago y día del mes.
type Template struct {
	Kind          entity.Kind
	Description   string
	Amount        decimal.Decimal
	Person        *entity.Person
	PaymentMethod *string
	Day           int
	// AtMonthEnd: todas las filas del grupo caen en el último día de su mes y no guardan dia
	// (filas antiguas cuyo día pudo haberse recortado).
	AtMonthEnd bool
}

func (t Template) identity() string {
	id := string(t.Kind) + "|" + t.Description + "|" + t.Amount.String() + "|"
	if t.Person != nil {
		id += string(*t.Person)
	}
	id += "|"
	if t.PaymentMethod != nil {
		id += *t.PaymentMethod
	}
	return id
}

// CollapseClamped descarta las plantillas de fin de mes que son el recorte de otra
// plantilla idéntica con un día mayor (ej. una Conta del 31 replicada en febrero como 28).
// Conserva el orden de entrada.
func CollapseClamped(templates []Template) []Template {
	maxDay := make(map[string]int, len(templates))
	for _, t := range templates {
		if d, ok := maxDay[t.identity()]; !ok || t.Day > d {
			maxDay[t.identity()] = t.Day
		}
	}
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		if t.AtMonthEnd && t.Day < maxDay[t.identity()] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MovementFor construye la fila que la plantilla debe tener en el mes indicado.
// Los salarios se guardan positivos y las Contas negativas y recurrentes.
func (t Template) MovementFor(month entity.Month) entity.Movement {
	m := entity.Movement{
		Date:        month.Day(t.Day),
		Description: t.Description,
		Kind:        t.Kind,
		Person:      t.Person,
		DueDay:      entity.IntPtr(t.Day),
	}
	switch t.Kind {
	case entity.KindSalary:
		m.Description = entity.SalaryDescription
		m.Amount = t.Amount.Abs()
	default:
		m.Amount = t.Amount.Abs().Neg()
		m.PaymentMethod = t.PaymentMethod
		m.InstallmentCount = entity.IntPtr(entity.RecurringForever)
	}
	return m
}

// IsMonthEnd indica si t es el último día de su mes.
func IsMonthEnd(t time.Time) bool {
	return t.Day() == entity.MonthOf(t).LastDay()
}

// TemplatesFromMovements deduce las plantillas a partir de filas en memoria; es el
// equivalente del GROUP BY que hace el repositorio.
func TemplatesFromMovements(rows []entity.Movement) []Template {
	index := map[string]int{}
	var out []Template
	for i := range rows {
		row := &rows[i]
		if row.Kind != entity.KindSalary && !row.IsRecurringBill() {
			continue
		}
		t := Template{
			Kind:        row.Kind,
			Description: row.Description,
			Amount:      row.Amount,
			Person:      row.Person,
			Day:         row.RecurrenceDay(),
		}
		if row.Kind == entity.KindBill {
			t.PaymentMethod = row.PaymentMethod
		}
		key := t.identity() + "|" + strconv.Itoa(t.Day)
		atEnd := row.DueDay == nil && IsMonthEnd(row.Date)
		if pos, ok := index[key]; ok {
			out[pos].AtMonthEnd = out[pos].AtMonthEnd && atEnd
			continue
		}
		t.AtMonthEnd = atEnd
		index[key] = len(out)
		out = append(out, t)
	}
	return out
}
