package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillInput son los campos de una Conta. Frequency se guarda en total_parcelas:
// 0 significa recurrente indefinida.
type BillInput struct {
	Description   string
	Person        string
	DueDay        int
	Amount        decimal.Decimal
	Frequency     int
	PaymentMethod string
}

// RecordBill registra la Conta del ciclo actual. Si es recurrente (Frequency == 0) la copia
// además en todos los meses que ya existen en el libro, salvo donde ya haya una fila igual.
func (uc *RecorderUseCase) RecordBill(ctx context.Context, in BillInput) (*Result, error) {
	const op = "registrar_conta"

	description, err := requireDescription(in.Description)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	person, err := entity.ParsePerson(in.Person)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireDay("dia_vencimento", in.DueDay); err != nil {
		return nil, uc.fail(op, err)
	}
	if err := requireNonZero("valor", in.Amount); err != nil {
		return nil, uc.fail(op, err)
	}
	if in.Frequency < 0 {
		return nil, uc.fail(op, fmt.Errorf("%w: frequência=%d negativa", domain.ErrValidation, in.Frequency))
	}

	res := &Result{BatchID: uuid.NewString()}
	bill := entity.Movement{
		Date:             domledger.DueDate(uc.today(), in.DueDay),
		Description:      description,
		Amount:           in.Amount.Abs().Neg(),
		Kind:             entity.KindBill,
		Person:           entity.PersonPtr(person),
		PaymentMethod:    optionalString(entity.NormalizePaymentMethod(in.PaymentMethod)),
		InstallmentCount: entity.IntPtr(in.Frequency),
		DueDay:           entity.IntPtr(in.DueDay),
		BatchID:          res.BatchID,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LimitRepository) error {
		first := bill
		if err := movRepo.Create(ctx, &first); err != nil {
			return err
		}
		res.Inserted++
		if in.Frequency != entity.RecurringForever {
			return nil
		}

		months, err := movRepo.DistinctMonths(ctx)
		if err != nil {
			return err
		}
		for _, month := range months {
			copyRow := bill
			copyRow.Date = month.Day(in.DueDay)
			inserted, err := movRepo.InsertIfAbsent(ctx, &copyRow)
			if err != nil {
				return fmt.Errorf("backfill %s: %w", month, err)
			}
			if inserted {
				res.Replicated++
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
