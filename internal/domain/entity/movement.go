package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind es el tipo de movimiento. Los valores son los aceptados por el CHECK de Movimentacoes.tipo.
type Kind string

const (
	KindPurchase   Kind = "Compra"
	KindBill       Kind = "Conta"
	KindReceipt    Kind = "Recebimento"
	KindSalary     Kind = "Salário"
	KindSavings    Kind = "Poupança"
	KindWithdrawal Kind = "Retirada"
)

// SalaryDescription es la descripción fija de los salarios; forma parte de su clave de deduplicación.
const SalaryDescription = "Salário"

// PaymentCredit es el método de pago que activa el día de corte y el subtotal de crédito.
const PaymentCredit = "Crédito"

// RecurringForever marca una Conta que se replica todos los meses (total_parcelas = 0).
const RecurringForever = 0

// Valid indica si el tipo pertenece al conjunto cerrado.
func (k Kind) Valid() bool {
	switch k {
	case KindPurchase, KindBill, KindReceipt, KindSalary, KindSavings, KindWithdrawal:
		return true
	}
	return false
}

// IsInflow: Salário y Recebimento suman a las entradas.
func (k Kind) IsInflow() bool { return k == KindSalary || k == KindReceipt }

// IsOutflow: Conta y Compra suman a las salidas.
func (k Kind) IsOutflow() bool { return k == KindBill || k == KindPurchase }

// NormalizePaymentMethod unifica las variantes de crédito ("Credit", "credito", "Crédito").
// Cualquier otro valor se conserva recortado.
func NormalizePaymentMethod(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "credit", "credito", "crédito":
		return PaymentCredit
	}
	return s
}

// Movement representa una fila de Movimentacoes. Nunca se actualiza: cada parcela o recurrencia es su propia fila.
type Movement struct {
	ID               int64
	Date             time.Time // solo fecha (00:00 UTC)
	Description      string
	Amount           decimal.Decimal // negativo = salida, positivo = entrada
	Kind             Kind
	Person           *Person // nil en movimientos del hogar (poupança/retirada)
	PaymentMethod    *string
	InstallmentIndex *int
	InstallmentCount *int // 0 en Conta = recurrente indefinida
	// DueDay es el día del mes pedido (columna dia). Difiere de Date.Day() cuando la fecha se recortó al fin de mes.
	DueDay           *int
	BatchID          string
}

// PersonName devuelve el nombre de la persona o "" si el movimiento es del hogar.
func (m *Movement) PersonName() string {
	if m.Person == nil {
		return ""
	}
	return string(*m.Person)
}

// IsCredit indica si el movimiento se pagó con crédito.
func (m *Movement) IsCredit() bool {
	return m.PaymentMethod != nil && NormalizePaymentMethod(*m.PaymentMethod) == PaymentCredit
}

// RecurrenceDay devuelve el día pedido o, para filas antiguas sin dia, el de la fecha.
func (m *Movement) RecurrenceDay() int {
	if m.DueDay != nil {
		return *m.DueDay
	}
	return m.Date.Day()
}

// IsRecurringBill indica si la fila es una plantilla de Conta recurrente.
func (m *Movement) IsRecurringBill() bool {
	return m.Kind == KindBill && m.InstallmentCount != nil && *m.InstallmentCount == RecurringForever
}

// Key devuelve la clave de deduplicación (fecha, descripción, persona).
func (m *Movement) Key() DedupKey {
	return DedupKey{Date: DateOnly(m.Date), Description: m.Description, Person: m.PersonName()}
}

// Validate aplica las invariantes mínimas antes de persistir.
func (m *Movement) Validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("%w: fecha requerida", domain.ErrValidation)
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("%w: descripción requerida", domain.ErrValidation)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: tipo %q desconocido", domain.ErrValidation, m.Kind)
	}
	if m.DueDay != nil && (*m.DueDay < 1 || *m.DueDay > 31) {
		return fmt.Errorf("%w: dia=%d fuera de 1..31", domain.ErrValidation, *m.DueDay)
	}
	if m.Person != nil && !m.Person.Valid() {
		return fmt.Errorf("%w: persona %q desconocida", domain.ErrValidation, *m.Person)
	}
	return nil
}

// DedupKey es la tripla (fecha, descripción, persona) usada por todas las inserciones idempotentes.
type DedupKey struct {
	Date        time.Time
	Description string
	Person      string
}

// DateOnly trunca a fecha calendario en UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IntPtr y StringPtr ayudan a construir campos opcionales.
func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }
