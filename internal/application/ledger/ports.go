// Package ledger contiene los casos de uso del libro del hogar: los registradores de
// movimientos, el replicador de recurrentes y el visor mensual con totales acumulados.
package ledger

import (
	"context"

	"github.com/jhoicas/financas-casa/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Una acción del usuario = una transacción: si fn devuelve error no persiste ninguna fila.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		limitRepo repository.LimitRepository,
	) error) error
}

// StatementGenerator genera el extracto mensual (PDF) a partir de un mes ya plegado.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, month *MonthLedger) ([]byte, error)
}
