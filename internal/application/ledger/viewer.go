package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/jhoicas/financas-casa/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxParallelLoads acota las consultas simultáneas al pool.
const maxParallelLoads = 4

// MonthLedger es un mes del libro con sus filas, los totales plegados y el estado de los límites.
type MonthLedger struct {
	Month     entity.Month
	Movements []entity.Movement
	Totals    domledger.Totals
	Limits    []domledger.LimitStatus
}

// ViewerUseCase arma la vista mes a mes arrastrando el total y la poupança desde el primer mes.
type ViewerUseCase struct {
	movRepo   repository.MovementRepository
	limitRepo repository.LimitRepository
	log       *logger.Logger
}

// NewViewerUseCase construye el visor sobre repositorios de solo lectura.
func NewViewerUseCase(movRepo repository.MovementRepository, limitRepo repository.LimitRepository, log *logger.Logger) *ViewerUseCase {
	return &ViewerUseCase{movRepo: movRepo, limitRepo: limitRepo, log: log.Component("viewer")}
}

// Overview devuelve todos los meses en orden ascendente con sus totales acumulados.
func (uc *ViewerUseCase) Overview(ctx context.Context) ([]MonthLedger, error) {
	months, err := uc.movRepo.DistinctMonths(ctx)
	if err != nil {
		return nil, err
	}
	return uc.fold(ctx, months)
}

// Month devuelve un único mes. Para obtener el total y la poupança anteriores pliega
// todos los meses previos. ErrNotFound si el mes no tiene movimientos.
func (uc *ViewerUseCase) Month(ctx context.Context, month entity.Month) (*MonthLedger, error) {
	months, err := uc.movRepo.DistinctMonths(ctx)
	if err != nil {
		return nil, err
	}
	upTo := -1
	for i, m := range months {
		if m == month {
			upTo = i
			break
		}
	}
	if upTo < 0 {
		return nil, fmt.Errorf("%w: mes %s sin movimientos", domain.ErrNotFound, month)
	}
	ledgers, err := uc.fold(ctx, months[:upTo+1])
	if err != nil {
		return nil, err
	}
	return &ledgers[upTo], nil
}

// fold carga en paralelo filas y límites de cada mes y después pliega en orden.
func (uc *ViewerUseCase) fold(ctx context.Context, months []entity.Month) ([]MonthLedger, error) {
	out := make([]MonthLedger, len(months))
	limits := make([][]entity.Limit, len(months))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, month := range months {
		out[i].Month = month
		g.Go(func() error {
			rows, err := uc.movRepo.ListByMonth(gctx, month)
			if err != nil {
				return fmt.Errorf("movimentos %s: %w", month, err)
			}
			out[i].Movements = rows
			return nil
		})
		g.Go(func() error {
			ls, err := uc.limitRepo.ListByMonth(gctx, month)
			if err != nil {
				return fmt.Errorf("limites %s: %w", month, err)
			}
			limits[i] = ls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.log.Error().Err(err).Msg("carga del libro fallida")
		return nil, err
	}

	total, savings := decimal.Zero, decimal.Zero
	for i := range out {
		out[i].Totals = domledger.Fold(out[i].Movements, total, savings)
		out[i].Limits = domledger.EvaluateLimits(limits[i], out[i].Totals)
		total, savings = out[i].Totals.MonthTotal, out[i].Totals.Savings
	}
	return out, nil
}
