package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LimitInput fija el tope de gastos de una persona para un mes "MM/YYYY".
type LimitInput struct {
	Person    string
	MonthYear string
	Amount    decimal.Decimal
}

// SetLimit crea o sobrescribe el límite de (mes, persona).
func (uc *RecorderUseCase) SetLimit(ctx context.Context, in LimitInput) (*entity.Limit, error) {
	const op = "definir_limite"

	person, err := entity.ParsePerson(in.Person)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	month, err := entity.ParseMonthYear(in.MonthYear)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	if in.Amount.IsNegative() {
		return nil, uc.fail(op, fmt.Errorf("%w: limite negativo", domain.ErrValidation))
	}

	l := &entity.Limit{MonthStart: month.Start(), Person: person, Amount: in.Amount}
	err = uc.txRunner.Run(ctx, func(_ repository.MovementRepository, limitRepo repository.LimitRepository) error {
		return limitRepo.Upsert(ctx, l)
	})
	if err != nil {
		return nil, uc.fail(op, err)
	}
	uc.log.Info().
		Str("op", op).
		Str("person", string(person)).
		Str("month", month.String()).
		Str("amount", in.Amount.String()).
		Msg("límite definido")
	return l, nil
}
