package repository

import (
	"context"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/ledger"
)

// MovementRepository define el puerto de persistencia de Movimentacoes.
// Las filas nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// InsertIfAbsent inserta m salvo que ya exista una fila con la misma (fecha, descripción, persona).
	// Devuelve true si insertó.
	InsertIfAbsent(ctx context.Context, m *entity.Movement) (bool, error)
	// DistinctMonths devuelve los meses con al menos un movimiento, en orden ascendente.
	DistinctMonths(ctx context.Context) ([]entity.Month, error)
	// ListByMonth devuelve las filas del mes ordenadas por fecha.
	ListByMonth(ctx context.Context, month entity.Month) ([]entity.Movement, error)
	// RecurringTemplates agrupa los salarios y las Contas con total_parcelas = 0.
	RecurringTemplates(ctx context.Context) ([]ledger.Template, error)
}
