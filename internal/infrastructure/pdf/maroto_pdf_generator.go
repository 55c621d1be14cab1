// Package pdf genera el extracto mensual del libro del hogar.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Extrato MM/YYYY  │  Total anterior                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJAS: Poupança | Entradas | Saídas | Crédito | Total      │
//	│  LÍMITES por persona (si hay)                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Data | Descrição | Tipo | Pessoa | Pagamento | Valor│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/pkg/brl"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorPositive = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ledger.StatementGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa ledger.StatementGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	household string
}

// NewMarotoStatementGenerator construye el generador; household aparece como autor del PDF.
func NewMarotoStatementGenerator(household string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{household: household}
}

// GenerateStatement genera el PDF del mes y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatement(_ context.Context, ml *ledger.MonthLedger) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato "+ml.Month.String(), true).
		WithAuthor(g.household, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ml))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(ml)...)
	if len(ml.Limits) > 0 {
		m.AddRows(limitRows(ml)...)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableMovementRows(ml.Movements)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(ml *ledger.MonthLedger) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Extrato "+ml.Month.String(), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d movimentações", len(ml.Movements)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Total anterior", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(brl.Format(ml.Totals.PreviousTotal), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRows: una caja por indicador, con el reparto por persona debajo.
func summaryRows(ml *ledger.MonthLedger) []core.Row {
	t := ml.Totals
	outflows := t.Outflows.Abs()

	box := func(title, value string, lines []string, color *props.Color) core.Col {
		c := col.New(2).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 9, Color: color, Top: 5, Align: align.Center}),
		)
		for i, l := range lines {
			c.Add(text.New(l, props.Text{Size: 7, Color: colorGray, Top: float64(11 + 4*i), Align: align.Center}))
		}
		return c
	}

	perPerson := func(values map[entity.Person]decimal.Decimal, abs bool) []string {
		out := make([]string, 0, len(entity.Persons))
		for _, p := range entity.Persons {
			v := values[p]
			if abs {
				v = v.Abs()
			}
			out = append(out, fmt.Sprintf("%s: %s", p, brl.Format(v)))
		}
		return out
	}

	return []core.Row{
		row.New(22).Add(
			box("Poupança", brl.Format(t.Savings), nil, colorPrimary),
			box("Entradas", brl.Format(t.Inflows.Total), perPerson(t.Inflows.ByPerson, false), colorPositive),
			box("Saídas", brl.Format(outflows.Total), perPerson(outflows.ByPerson, false), colorNegative),
			box("Crédito", brl.FormatAbs(sum(t.Credit)), perPerson(t.Credit, true), colorNegative),
			box("Total do mês", brl.Format(t.MonthTotal), nil, amountColor(t.MonthTotal)),
			col.New(2),
		),
	}
}

func limitRows(ml *ledger.MonthLedger) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("Limites", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, l := range ml.Limits {
		status, color := "dentro do limite", colorPositive
		if l.Exceeded {
			status, color = "limite excedido", colorNegative
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(string(l.Person), props.Text{Size: 8})),
			col.New(3).Add(text.New("Limite "+brl.Format(l.Limit), props.Text{Size: 8})),
			col.New(3).Add(text.New("Gasto "+brl.Format(l.Spent), props.Text{Size: 8})),
			col.New(3).Add(text.New(status, props.Text{Size: 8, Color: color, Align: align.Right})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("Descrição", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Pessoa", 1, align.Left),
		h("Pagamento", 2, align.Left),
		h("Valor", 2, align.Right),
	)
}

// tableMovementRows: una fila por movimiento; las parcelas muestran "i/N".
func tableMovementRows(movements []entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		description := m.Description
		if m.InstallmentIndex != nil && m.InstallmentCount != nil && *m.InstallmentCount > 0 {
			description = fmt.Sprintf("%s (%d/%d)", description, *m.InstallmentIndex, *m.InstallmentCount)
		}
		payment := "—"
		if m.PaymentMethod != nil {
			payment = *m.PaymentMethod
		}
		person := m.PersonName()
		if person == "" {
			person = "—"
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(m.Date.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(description, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(string(m.Kind), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(person, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(payment, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(brl.Format(m.Amount), props.Text{
				Size: 8, Top: 1, Align: align.Right, Color: amountColor(m.Amount),
			})),
		))
	}
	return result
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func amountColor(v decimal.Decimal) *props.Color {
	if v.IsNegative() {
		return colorNegative
	}
	return colorPositive
}

func sum(values map[entity.Person]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
