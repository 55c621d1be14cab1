package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PurchaseInput son los campos ya capturados de una compra en parcelas.
type PurchaseInput struct {
	Description       string
	InstallmentAmount decimal.Decimal // magnitud de cada parcela
	Person            string
	PaymentMethod     string
	Installments      int
}

// RecordPurchase registra las N parcelas de una compra. Cada parcela abre (o completa) su mes,
// así que después de insertarla se replican en ese mes los salarios y Contas recurrentes.
// Todo corre en una transacción: o persisten las N parcelas con sus réplicas, o ninguna.
func (uc *RecorderUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*Result, error) {
	const op = "registrar_compra"

	description, err := requireDescription(in.Description)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireNonZero("valor", in.InstallmentAmount); err != nil {
		return nil, uc.fail(op, err)
	}
	person, err := entity.ParsePerson(in.Person)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireRepeat("parcelas", in.Installments); err != nil {
		return nil, uc.fail(op, err)
	}
	method := entity.NormalizePaymentMethod(in.PaymentMethod)

	first := domledger.FirstChargeDate(uc.today(), person, method, uc.anchors)
	amount := in.InstallmentAmount.Abs().Neg()
	res := &Result{BatchID: uuid.NewString()}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LimitRepository) error {
		for i := 1; i <= in.Installments; i++ {
			m := &entity.Movement{
				Date:             domledger.InstallmentDate(first, i),
				Description:      description,
				Amount:           amount,
				Kind:             entity.KindPurchase,
				Person:           entity.PersonPtr(person),
				PaymentMethod:    optionalString(method),
				InstallmentIndex: entity.IntPtr(i),
				InstallmentCount: entity.IntPtr(in.Installments),
				BatchID:          res.BatchID,
			}
			if err := m.Validate(); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("parcela %d/%d: %w", i, in.Installments, err)
			}
			res.Inserted++

			n, err := uc.replicator.ApplyTo(ctx, movRepo, entity.MonthOf(m.Date), res.BatchID)
			if err != nil {
				return fmt.Errorf("replicar %s: %w", entity.MonthOf(m.Date), err)
			}
			res.Replicated += n
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(op, err)
	}
	uc.done(op, res)
	return res, nil
}
