package postgres

import (
	"context"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
)

var _ repository.LimitRepository = (*LimitRepo)(nil)

// LimitRepo implementación sobre PostgreSQL de Limites.
type LimitRepo struct {
	q Querier
}

// NewLimitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLimitRepository(q Querier) *LimitRepo {
	return &LimitRepo{q: q}
}

// Upsert crea o sobrescribe el límite de (data, pessoa).
func (r *LimitRepo) Upsert(ctx context.Context, l *entity.Limit) error {
	query := `
		INSERT INTO limites (data, pessoa, valor)
		VALUES ($1, $2, $3)
		ON CONFLICT (data, pessoa) DO UPDATE SET valor = EXCLUDED.valor
		RETURNING id`
	err := r.q.QueryRow(ctx, query, entity.DateOnly(l.MonthStart), string(l.Person), l.Amount).Scan(&l.ID)
	if err != nil {
		return classify("upsert limite", err)
	}
	return nil
}

// ListByMonth devuelve los límites del mes.
func (r *LimitRepo) ListByMonth(ctx context.Context, month entity.Month) ([]entity.Limit, error) {
	query := `SELECT id, data, pessoa, valor FROM limites WHERE data = $1 ORDER BY pessoa`
	rows, err := r.q.Query(ctx, query, month.Start())
	if err != nil {
		return nil, classify("list limites", err)
	}
	defer rows.Close()

	var out []entity.Limit
	for rows.Next() {
		var (
			l      entity.Limit
			person string
		)
		if err := rows.Scan(&l.ID, &l.MonthStart, &person, &l.Amount); err != nil {
			return nil, classify("scan limite", err)
		}
		l.Person = entity.Person(person)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list limites", err)
	}
	return out, nil
}
