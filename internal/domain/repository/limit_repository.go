package repository

import (
	"context"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
)

// LimitRepository define el puerto de persistencia de Limites.
type LimitRepository interface {
	// Upsert crea o sobrescribe el límite de (mes, persona); gana la última escritura.
	Upsert(ctx context.Context, l *entity.Limit) error
	ListByMonth(ctx context.Context, month entity.Month) ([]entity.Limit, error)
}
