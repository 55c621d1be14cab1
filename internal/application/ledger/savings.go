package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Descripciones por defecto de la poupança.
const (
	DefaultDepositDescription    = "Depósito"
	DefaultWithdrawalDescription = "Retirada"
)

// SavingsInput es un movimiento de poupança del hogar (sin persona).
type SavingsInput struct {
	Amount      decimal.Decimal
	Description string
}

// RecordDeposit guarda un depósito con fecha de hoy. El valor conserva el signo ingresado:
// la poupança acumula la suma de los depósitos tal cual.
func (uc *RecorderUseCase) RecordDeposit(ctx context.Context, in SavingsInput) (*Result, error) {
	return uc.recordSavings(ctx, "registrar_deposito", entity.KindSavings, DefaultDepositDescription, in)
}

// RecordWithdrawal guarda una retirada con fecha de hoy, tal como fue ingresada. El plegado
// de totales resta siempre su magnitud.
func (uc *RecorderUseCase) RecordWithdrawal(ctx context.Context, in SavingsInput) (*Result, error) {
	return uc.recordSavings(ctx, "registrar_retirada", entity.KindWithdrawal, DefaultWithdrawalDescription, in)
}

func (uc *RecorderUseCase) recordSavings(ctx context.Context, op string, kind entity.Kind, fallback string, in SavingsInput) (*Result, error) {
	if err := requireNonZero("valor", in.Amount); err != nil {
		return nil, uc.fail(op, err)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = fallback
	}

	res := &Result{BatchID: uuid.NewString()}
	m := &entity.Movement{
		Date:        uc.today(),
		Description: description,
		Amount:      in.Amount,
		Kind:        kind,
		BatchID:     res.BatchID,
	}
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LimitRepository) error {
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		res.Inserted++
		return nil
	})
	if err != nil {
		return nil, uc.fail(op, err)
	}
	uc.done(op, res)
	return res, nil
}
