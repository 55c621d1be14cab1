package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL de Movimentacoes (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, data, descricao, valor, tipo, pessoa, pagamento, parcela_atual, total_parcelas, dia, COALESCE(lote::text, '')`

// Create persiste un movimiento y completa su ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimentacoes (data, descricao, valor, tipo, pessoa, pagamento, parcela_atual, total_parcelas, dia, lote)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')::uuid)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, movementArgs(m)...).Scan(&m.ID)
	if err != nil {
		return classify("insert movimentacao", err)
	}
	return nil
}

// InsertIfAbsent inserta solo si no existe otra fila con la misma (data, descricao, pessoa).
// La comprobación y la inserción son una sola sentencia.
func (r *MovementRepo) InsertIfAbsent(ctx context.Context, m *entity.Movement) (bool, error) {
	query := `
		INSERT INTO movimentacoes (data, descricao, valor, tipo, pessoa, pagamento, parcela_atual, total_parcelas, dia, lote)
		SELECT $1::date, $2::text, $3::numeric, $4::text, $5::text, $6::text, $7::int, $8::int, $9::int, NULLIF($10::text, '')::uuid
		WHERE NOT EXISTS (
			SELECT 1 FROM movimentacoes
			WHERE data = $1::date AND descricao = $2::text AND pessoa IS NOT DISTINCT FROM $5::text
		)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, movementArgs(m)...).Scan(&m.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classify("insert-if-absent movimentacao", err)
	}
	return true, nil
}

// DistinctMonths devuelve los meses presentes en la tabla en orden ascendente.
func (r *MovementRepo) DistinctMonths(ctx context.Context) ([]entity.Month, error) {
	query := `SELECT DISTINCT date_trunc('month', data)::date AS mes FROM movimentacoes ORDER BY mes`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify("list months", err)
	}
	defer rows.Close()

	var out []entity.Month
	for rows.Next() {
		var start time.Time
		if err := rows.Scan(&start); err != nil {
			return nil, classify("scan month", err)
		}
		out = append(out, entity.MonthOf(start))
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list months", err)
	}
	return out, nil
}

// ListByMonth devuelve las filas del mes ordenadas por fecha (y por id dentro del día).
func (r *MovementRepo) ListByMonth(ctx context.Context, month entity.Month) ([]entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movimentacoes
		WHERE data >= $1 AND data < $2
		ORDER BY data, id`
	rows, err := r.q.Query(ctx, query, month.Start(), month.AddMonths(1).Start())
	if err != nil {
		return nil, classify("list movimentacoes", err)
	}
	defer rows.Close()

	var out []entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, classify("scan movimentacao", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list movimentacoes", err)
	}
	return out, nil
}

// RecurringTemplates agrupa salarios y Contas con total_parcelas = 0 por
// (tipo, descricao, valor, pessoa, pagamento, dia). El día es la columna dia; las filas
// antiguas sin dia usan el día de la fecha. fim_mes marca los grupos sin dia cuyas filas
// caen todas en el último día de su mes.
func (r *MovementRepo) RecurringTemplates(ctx context.Context) ([]ledger.Template, error) {
	query := `
		SELECT tipo, descricao, valor, pessoa,
		       CASE WHEN tipo = 'Conta' THEN pagamento END AS pagamento,
		       COALESCE(dia, EXTRACT(DAY FROM data)::int) AS dia_mes,
		       bool_and(dia IS NULL AND data = (date_trunc('month', data) + interval '1 month - 1 day')::date) AS fim_mes
		FROM movimentacoes
		WHERE tipo = 'Salário' OR (tipo = 'Conta' AND total_parcelas = 0)
		GROUP BY 1, 2, 3, 4, 5, 6
		ORDER BY MIN(id)`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify("recurring templates", err)
	}
	defer rows.Close()

	var out []ledger.Template
	for rows.Next() {
		var (
			t       ledger.Template
			kind    string
			amount  decimal.Decimal
			person  *string
			payment *string
		)
		if err := rows.Scan(&kind, &t.Description, &amount, &person, &payment, &t.Day, &t.AtMonthEnd); err != nil {
			return nil, classify("scan template", err)
		}
		t.Kind = entity.Kind(kind)
		t.Amount = amount
		t.Person = toPerson(person)
		t.PaymentMethod = payment
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("recurring templates", err)
	}
	return out, nil
}

func movementArgs(m *entity.Movement) []any {
	var person *string
	if m.Person != nil {
		p := string(*m.Person)
		person = &p
	}
	return []any{
		entity.DateOnly(m.Date), m.Description, m.Amount, string(m.Kind), person,
		m.PaymentMethod, m.InstallmentIndex, m.InstallmentCount, m.DueDay, m.BatchID,
	}
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m      entity.Movement
		kind   string
		person *string
	)
	err := row.Scan(&m.ID, &m.Date, &m.Description, &m.Amount, &kind, &person,
		&m.PaymentMethod, &m.InstallmentIndex, &m.InstallmentCount, &m.DueDay, &m.BatchID)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.Kind(kind)
	m.Person = toPerson(person)
	return &m, nil
}

func toPerson(s *string) *entity.Person {
	if s == nil {
		return nil
	}
	return entity.PersonPtr(entity.Person(*s))
}
