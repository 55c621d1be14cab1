package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReceiptInput son los campos de un recebimento que se repite Repeat meses.
type ReceiptInput struct {
	Amount      decimal.Decimal
	Day         int
	Description string
	Repeat      int
	Person      string
}

// RecordReceipt inserta Repeat recebimentos mensuales consecutivos desde el mes actual.
// No deduplica: registrar dos veces el mismo recebimento crea filas repetidas.
func (uc *RecorderUseCase) RecordReceipt(ctx context.Context, in ReceiptInput) (*Result, error) {
	const op = "registrar_recebimento"

	if err := requireNonZero("valor", in.Amount); err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireDay("dia", in.Day); err != nil {
		return nil, uc.fail(op, err)
	}
	description, err := requireDescription(in.Description)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireRepeat("frequência", in.Repeat); err != nil {
		return nil, uc.fail(op, err)
	}
	person, err := entity.ParsePerson(in.Person)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	res := &Result{BatchID: uuid.NewString()}
	dates := domledger.ReceiptDates(uc.today(), in.Day, in.Repeat)
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LimitRepository) error {
		for _, d := range dates {
			m := &entity.Movement{
				Date:        d,
				Description: description,
				Amount:      in.Amount.Abs(),
				Kind:        entity.KindReceipt,
				Person:      entity.PersonPtr(person),
				DueDay:      entity.IntPtr(in.Day),
				BatchID:     res.BatchID,
			}
			if err := movRepo.Create(ctx, m); err != nil {
				return err
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(op, err)
	}
	uc.done(op, res)
	return res, nil
}
