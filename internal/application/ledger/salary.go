package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SalaryInput son los campos de un salario mensual.
type SalaryInput struct {
	Amount decimal.Decimal
	Day    int
	Person string
}

// RecordSalary copia el salario en cada mes que ya existe en el libro. Los meses que
// todavía no existen lo reciben del Replicator cuando se abren.
func (uc *RecorderUseCase) RecordSalary(ctx context.Context, in SalaryInput) (*Result, error) {
	const op = "registrar_salario"

	if err := requireNonZero("valor", in.Amount); err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireDay("dia", in.Day); err != nil {
		return nil, uc.fail(op, err)
	}
	person, err := entity.ParsePerson(in.Person)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	res := &Result{BatchID: uuid.NewString()}
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LimitRepository) error {
		months, err := movRepo.DistinctMonths(ctx)
		if err != nil {
			return err
		}
		if len(months) == 0 {
			uc.log.Warn().Str("person", string(person)).Msg("sin meses en el libro; el salario se replicará al abrir el primero")
		}
		for _, month := range months {
			m := &entity.Movement{
				Date:        month.Day(in.Day),
				Description: entity.SalaryDescription,
				Amount:      in.Amount.Abs(),
				Kind:        entity.KindSalary,
				Person:      entity.PersonPtr(person),
				DueDay:      entity.IntPtr(in.Day),
				BatchID:     res.BatchID,
			}
			inserted, err := movRepo.InsertIfAbsent(ctx, m)
			if err != nil {
				return fmt.Errorf("salário %s: %w", month, err)
			}
			if inserted {
				res.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(op, err)
	}
	uc.done(op, res)
	return res, nil
}
