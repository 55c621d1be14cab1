package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFirstChargeDate(t *testing.T) {
	anchors := ledger.DefaultCreditAnchors()
	cases := []struct {
		name    string
		today   time.Time
		person  entity.Person
		payment string
		want    time.Time
	}{
		{"Yuri antes del corte usa el 14 de este mes", date(2024, 5, 10), entity.PersonYuri, "Crédito", date(2024, 5, 14)},
		{"Yuri después del corte usa el 14 del mes siguiente", date(2024, 5, 20), entity.PersonYuri, "Crédito", date(2024, 6, 14)},
		{"Yuri el mismo día del corte pasa al mes siguiente", date(2024, 5, 14), entity.PersonYuri, "Credit", date(2024, 6, 14)},
		{"Marcos antes del corte usa el 26", date(2024, 5, 25), entity.PersonMarcos, "credito", date(2024, 5, 26)},
		{"Marcos en diciembre cruza de año", date(2024, 12, 27), entity.PersonMarcos, "Crédito", date(2025, 1, 26)},
		{"débito conserva la fecha de hoy", date(2024, 5, 20), entity.PersonYuri, "Débito", date(2024, 5, 20)},
		{"persona sin corte conserva la fecha de hoy", date(2024, 5, 20), entity.Person("Ana"), "Crédito", date(2024, 5, 20)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.FirstChargeDate(tc.today.Add(15*time.Hour), tc.person, tc.payment, anchors)
			assert.True(t, tc.want.Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestInstallmentDate_ConservaDiaYRecortaFinDeMes(t *testing.T) {
	first := date(2024, 1, 31)
	assert.Equal(t, date(2024, 1, 31), ledger.InstallmentDate(first, 1))
	assert.Equal(t, date(2024, 2, 29), ledger.InstallmentDate(first, 2))
	assert.Equal(t, date(2024, 3, 31), ledger.InstallmentDate(first, 3))
	assert.Equal(t, date(2025, 1, 31), ledger.InstallmentDate(first, 13))
}

func TestDueDate(t *testing.T) {
	assert.Equal(t, date(2024, 3, 10), ledger.DueDate(date(2024, 3, 10), 10), "hoy == vencimiento usa este mes")
	assert.Equal(t, date(2024, 3, 15), ledger.DueDate(date(2024, 3, 10), 15))
	assert.Equal(t, date(2024, 4, 5), ledger.DueDate(date(2024, 3, 10), 5))
	assert.Equal(t, date(2024, 4, 30), ledger.DueDate(date(2024, 4, 12), 31), "día 31 en abril se recorta al 30")
}

func TestReceiptDates(t *testing.T) {
	got := ledger.ReceiptDates(date(2024, 11, 3), 20, 3)
	assert.Equal(t, []time.Time{date(2024, 11, 20), date(2024, 12, 20), date(2025, 1, 20)}, got)
	assert.Empty(t, ledger.ReceiptDates(date(2024, 11, 3), 20, 0))
}

func TestValidDay(t *testing.T) {
	assert.True(t, ledger.ValidDay(1))
	assert.True(t, ledger.ValidDay(31))
	assert.False(t, ledger.ValidDay(0))
	assert.False(t, ledger.ValidDay(32))
}
