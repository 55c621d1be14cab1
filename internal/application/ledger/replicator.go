package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/jhoicas/financas-casa/pkg/logger"
)

// Replicator garantiza que un mes tenga todas sus filas recurrentes (salarios y Contas con
// total_parcelas = 0). Es idempotente: la segunda pasada sobre el mismo mes no inserta nada.
type Replicator struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewReplicator construye el replicador.
func NewReplicator(txRunner TxRunner, log *logger.Logger) *Replicator {
	return &Replicator{txRunner: txRunner, log: log.Component("replicator")}
}

// Replicate aplica las plantillas recurrentes al mes en su propia transacción.
func (r *Replicator) Replicate(ctx context.Context, month entity.Month) (*Result, error) {
	res := &Result{BatchID: uuid.NewString()}
	err := r.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LimitRepository) error {
		n, err := r.ApplyTo(ctx, movRepo, month, res.BatchID)
		res.Replicated = n
		return err
	})
	if err != nil {
		r.log.Error().Err(err).Str("month", month.String()).Msg("replicación fallida")
		return nil, err
	}
	r.log.Info().Str("month", month.String()).Int("replicated", res.Replicated).Msg("mes replicado")
	return res, nil
}

// ApplyTo aplica las plantillas usando un repositorio ya atado a la transacción del llamador.
// Primero los salarios, después las Contas. Devuelve cuántas filas insertó.
func (r *Replicator) ApplyTo(ctx context.Context, movRepo repository.MovementRepository, month entity.Month, batchID string) (int, error) {
	templates, err := movRepo.RecurringTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("plantillas: %w", err)
	}
	templates = domledger.CollapseClamped(templates)

	inserted := 0
	for _, kind := range []entity.Kind{entity.KindSalary, entity.KindBill} {
		for _, t := range templates {
			if t.Kind != kind {
				continue
			}
			m := t.MovementFor(month)
			m.BatchID = batchID
			ok, err := movRepo.InsertIfAbsent(ctx, &m)
			if err != nil {
				return inserted, fmt.Errorf("%s %q: %w", t.Kind, t.Description, err)
			}
			if ok {
				inserted++
			}
		}
	}
	if inserted > 0 {
		r.log.Debug().Str("month", month.String()).Int("inserted", inserted).Msg("filas recurrentes creadas")
	}
	return inserted, nil
}
