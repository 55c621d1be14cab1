package dto

import (
	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/pkg/brl"
	"github.com/shopspring/decimal"
)

// PurchaseRequest entrada de POST /api/purchases. Sin person se usa la del token.
type PurchaseRequest struct {
	Description       string          `json:"description" validate:"required"`
	InstallmentAmount decimal.Decimal `json:"installment_amount" validate:"required"`
	Person            string          `json:"person"`
	PaymentMethod     string          `json:"payment_method"`
	Installments      int             `json:"installments" validate:"min=1"`
}

// BillRequest entrada de POST /api/bills. frequency = 0 replica la Conta todos los meses.
type BillRequest struct {
	Description   string          `json:"description" validate:"required"`
	Person        string          `json:"person"`
	DueDay        int             `json:"due_day" validate:"min=1,max=31"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Frequency     int             `json:"frequency" validate:"min=0"`
	PaymentMethod string          `json:"payment_method"`
}

// SalaryRequest entrada de POST /api/salaries.
type SalaryRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Day    int             `json:"day" validate:"min=1,max=31"`
	Person string          `json:"person"`
}

// ReceiptRequest entrada de POST /api/receipts.
type ReceiptRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Day         int             `json:"day" validate:"min=1,max=31"`
	Description string          `json:"description" validate:"required"`
	Repeat      int             `json:"repeat" validate:"min=1"`
	Person      string          `json:"person"`
}

// SavingsRequest entrada de depósitos y retiradas de poupança.
type SavingsRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description"`
}

// LimitRequest entrada de PUT /api/limits. month en formato MM/YYYY.
type LimitRequest struct {
	Person string          `json:"person"`
	Month  string          `json:"month" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// ReplicationRequest entrada de POST /api/replications.
type ReplicationRequest struct {
	Month string `json:"month" validate:"required"`
}

// RecordResponse salida de los registradores.
type RecordResponse struct {
	BatchID    string `json:"batch_id"`
	Inserted   int    `json:"inserted"`
	Replicated int    `json:"replicated"`
}

// LimitResponse salida de PUT /api/limits.
type LimitResponse struct {
	Month  string          `json:"month"`
	Person string          `json:"person"`
	Amount decimal.Decimal `json:"amount"`
}

// MovementResponse una fila del libro.
type MovementResponse struct {
	ID               int64           `json:"id"`
	Date             string          `json:"date"` // YYYY-MM-DD
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Kind             string          `json:"kind"`
	Person           string          `json:"person,omitempty"`
	PaymentMethod    *string         `json:"payment_method,omitempty"`
	InstallmentIndex *int            `json:"installment_index,omitempty"`
	InstallmentCount *int            `json:"installment_count,omitempty"`
	Day              *int            `json:"day,omitempty"`
	BatchID          string          `json:"batch_id,omitempty"`
}

// BreakdownResponse total y reparto por persona.
type BreakdownResponse struct {
	Total    decimal.Decimal            `json:"total"`
	ByPerson map[string]decimal.Decimal `json:"by_person"`
}

// TotalsResponse totales de un mes. Las salidas se muestran en valor absoluto;
// el crédito conserva el signo.
type TotalsResponse struct {
	PreviousTotal decimal.Decimal            `json:"previous_total"`
	Savings       decimal.Decimal            `json:"savings"`
	Inflows       BreakdownResponse          `json:"inflows"`
	Outflows      BreakdownResponse          `json:"outflows"`
	Credit        map[string]decimal.Decimal `json:"credit"`
	MonthTotal    decimal.Decimal            `json:"month_total"`
	MonthTotalBRL string                     `json:"month_total_brl"`
}

// LimitStatusResponse límite del mes frente a lo gastado.
type LimitStatusResponse struct {
	Person   string          `json:"person"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"`
	Exceeded bool            `json:"exceeded"`
}

// MonthLedgerResponse un mes del libro.
type MonthLedgerResponse struct {
	Month     string                `json:"month"` // MM/YYYY
	Movements []MovementResponse    `json:"movements"`
	Totals    TotalsResponse        `json:"totals"`
	Limits    []LimitStatusResponse `json:"limits"`
}

// NewRecordResponse convierte el resultado de un registrador.
func NewRecordResponse(r *ledger.Result) RecordResponse {
	return RecordResponse{BatchID: r.BatchID, Inserted: r.Inserted, Replicated: r.Replicated}
}

// NewLimitResponse convierte un límite guardado.
func NewLimitResponse(l *entity.Limit) LimitResponse {
	return LimitResponse{Month: l.Month().String(), Person: string(l.Person), Amount: l.Amount}
}

// NewMonthLedgerResponse convierte un mes plegado.
func NewMonthLedgerResponse(ml *ledger.MonthLedger) MonthLedgerResponse {
	out := MonthLedgerResponse{
		Month:     ml.Month.String(),
		Movements: make([]MovementResponse, 0, len(ml.Movements)),
		Totals:    newTotalsResponse(ml.Totals),
		Limits:    make([]LimitStatusResponse, 0, len(ml.Limits)),
	}
	for i := range ml.Movements {
		m := &ml.Movements[i]
		out.Movements = append(out.Movements, MovementResponse{
			ID:               m.ID,
			Date:             m.Date.Format("2006-01-02"),
			Description:      m.Description,
			Amount:           m.Amount,
			Kind:             string(m.Kind),
			Person:           m.PersonName(),
			PaymentMethod:    m.PaymentMethod,
			InstallmentIndex: m.InstallmentIndex,
			InstallmentCount: m.InstallmentCount,
			Day:              m.DueDay,
			BatchID:          m.BatchID,
		})
	}
	for _, l := range ml.Limits {
		out.Limits = append(out.Limits, LimitStatusResponse{
			Person:   string(l.Person),
			Limit:    l.Limit,
			Spent:    l.Spent,
			Exceeded: l.Exceeded,
		})
	}
	return out
}

func newTotalsResponse(t domledger.Totals) TotalsResponse {
	return TotalsResponse{
		PreviousTotal: t.PreviousTotal,
		Savings:       t.Savings,
		Inflows:       newBreakdownResponse(t.Inflows),
		Outflows:      newBreakdownResponse(t.Outflows.Abs()),
		Credit:        byPerson(t.Credit),
		MonthTotal:    t.MonthTotal,
		MonthTotalBRL: brl.Format(t.MonthTotal),
	}
}

func newBreakdownResponse(b domledger.Breakdown) BreakdownResponse {
	return BreakdownResponse{Total: b.Total, ByPerson: byPerson(b.ByPerson)}
}

func byPerson(m map[entity.Person]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for p, v := range m {
		out[string(p)] = v
	}
	return out
}
