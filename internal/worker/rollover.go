// Package worker contiene los procesos periódicos del servicio.
package worker

import (
	"context"
	"time"

	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/pkg/logger"
)

// monthReplicator lo implementa *ledger.Replicator.
type monthReplicator interface {
	Replicate(ctx context.Context, month entity.Month) (*ledger.Result, error)
}

// RolloverWorker replica periódicamente los recurrentes del mes actual, de modo que un mes
// nuevo recibe sus salarios y Contas sin esperar a una compra que lo abra.
type RolloverWorker struct {
	rep      monthReplicator
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
	log      *logger.Logger
}

// NewRolloverWorker construye el worker. loc decide en qué mes estamos.
func NewRolloverWorker(rep monthReplicator, interval time.Duration, loc *time.Location, log *logger.Logger) *RolloverWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &RolloverWorker{rep: rep, interval: interval, loc: loc, now: time.Now, log: log.Component("rollover")}
}

// Run procesa una vez al arrancar y después en cada tick hasta que ctx se cancela.
func (w *RolloverWorker) Run(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Str("tz", w.loc.String()).Msg("rollover worker iniciado")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("rollover worker detenido")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce replica el mes actual. Los errores se registran; el próximo tick reintenta.
func (w *RolloverWorker) RunOnce(ctx context.Context) {
	month := entity.MonthOf(w.now().In(w.loc))
	res, err := w.rep.Replicate(ctx, month)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Error().Err(err).Str("month", month.String()).Msg("rollover fallido")
		return
	}
	w.log.Info().
		Str("month", month.String()).
		Int("replicated", res.Replicated).
		Time("next_check", w.now().Add(w.interval)).
		Msg("rollover completo")
}
