package ledger

import (
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Breakdown es un total general más su reparto por persona.
// Las filas sin persona (o de una persona fuera del hogar) solo cuentan en Total.
type Breakdown struct {
	Total    decimal.Decimal
	ByPerson map[entity.Person]decimal.Decimal
}

func newBreakdown() Breakdown {
	b := Breakdown{Total: decimal.Zero, ByPerson: make(map[entity.Person]decimal.Decimal, len(entity.Persons))}
	for _, p := range entity.Persons {
		b.ByPerson[p] = decimal.Zero
	}
	return b
}

func (b *Breakdown) add(person *entity.Person, amount decimal.Decimal) {
	b.Total = b.Total.Add(amount)
	if person != nil && person.Valid() {
		b.ByPerson[*person] = b.ByPerson[*person].Add(amount)
	}
}

// Abs devuelve el reparto en valor absoluto (las salidas se muestran positivas).
func (b Breakdown) Abs() Breakdown {
	out := Breakdown{Total: b.Total.Abs(), ByPerson: make(map[entity.Person]decimal.Decimal, len(b.ByPerson))}
	for p, v := range b.ByPerson {
		out.ByPerson[p] = v.Abs()
	}
	return out
}

// Totals es el resultado del plegado de un mes.
//
//	Inflows:  Salário + Recebimento (positivos)
//	Outflows: Conta + Compra, con signo (negativos)
//	Credit:   filas pagadas con Crédito por persona, con signo
//	Savings:  poupança acumulada = anterior + depósitos − |retiradas|
//	MonthTotal = PreviousTotal + Inflows.Total + Outflows.Total
type Totals struct {
	PreviousTotal decimal.Decimal
	Savings       decimal.Decimal
	Inflows       Breakdown
	Outflows      Breakdown
	Credit        map[entity.Person]decimal.Decimal
	MonthTotal    decimal.Decimal
}

// Fold recorre una sola vez las filas del mes y arrastra el total y la poupança del mes anterior.
// Es una función pura: mismo resultado para las mismas entradas.
func Fold(rows []entity.Movement, previousTotal, previousSavings decimal.Decimal) Totals {
	t := Totals{
		PreviousTotal: previousTotal,
		Savings:       previousSavings,
		Inflows:       newBreakdown(),
		Outflows:      newBreakdown(),
		Credit:        make(map[entity.Person]decimal.Decimal, len(entity.Persons)),
	}
	for _, p := range entity.Persons {
		t.Credit[p] = decimal.Zero
	}

	for i := range rows {
		row := &rows[i]
		switch {
		case row.Kind.IsInflow():
			t.Inflows.add(row.Person, row.Amount)
		case row.Kind.IsOutflow():
			t.Outflows.add(row.Person, row.Amount)
		case row.Kind == entity.KindSavings:
			t.Savings = t.Savings.Add(row.Amount)
		case row.Kind == entity.KindWithdrawal:
			t.Savings = t.Savings.Sub(row.Amount.Abs())
		}
		if row.IsCredit() && row.Person != nil && row.Person.Valid() {
			t.Credit[*row.Person] = t.Credit[*row.Person].Add(row.Amount)
		}
	}

	t.MonthTotal = previousTotal.Add(t.Inflows.Total).Add(t.Outflows.Total)
	return t
}

// LimitStatus compara el gasto del mes de una persona con su límite.
type LimitStatus struct {
	Person   entity.Person
	Limit    decimal.Decimal
	Spent    decimal.Decimal // magnitud de las salidas de la persona
	Exceeded bool
}

// EvaluateLimits cruza los límites del mes con las salidas plegadas.
// Solo devuelve personas con límite definido, en el orden de entity.Persons.
func EvaluateLimits(limits []entity.Limit, t Totals) []LimitStatus {
	byPerson := make(map[entity.Person]decimal.Decimal, len(limits))
	for _, l := range limits {
		byPerson[l.Person] = l.Amount
	}
	var out []LimitStatus
	for _, p := range entity.Persons {
		limit, ok := byPerson[p]
		if !ok {
			continue
		}
		spent := t.Outflows.ByPerson[p].Abs()
		out = append(out, LimitStatus{
			Person:   p,
			Limit:    limit,
			Spent:    spent,
			Exceeded: spent.GreaterThan(limit),
		})
	}
	return out
}
