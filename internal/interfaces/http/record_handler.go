package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/financas-casa/internal/application/dto"
	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
)

// recorder lo implementa *ledger.RecorderUseCase.
type recorder interface {
	RecordPurchase(ctx context.Context, in ledger.PurchaseInput) (*ledger.Result, error)
	RecordBill(ctx context.Context, in ledger.BillInput) (*ledger.Result, error)
	RecordSalary(ctx context.Context, in ledger.SalaryInput) (*ledger.Result, error)
	RecordReceipt(ctx context.Context, in ledger.ReceiptInput) (*ledger.Result, error)
	RecordDeposit(ctx context.Context, in ledger.SavingsInput) (*ledger.Result, error)
	RecordWithdrawal(ctx context.Context, in ledger.SavingsInput) (*ledger.Result, error)
	SetLimit(ctx context.Context, in ledger.LimitInput) (*entity.Limit, error)
}

// replicator lo implementa *ledger.Replicator.
type replicator interface {
	Replicate(ctx context.Context, month entity.Month) (*ledger.Result, error)
}

// RecordHandler expone los registradores del libro.
type RecordHandler struct {
	uc  recorder
	rep replicator
}

// NewRecordHandler construye el handler.
func NewRecordHandler(uc recorder, rep replicator) *RecordHandler {
	return &RecordHandler{uc: uc, rep: rep}
}

// personOrToken usa la persona del cuerpo y, si falta, la autenticada.
func personOrToken(c *fiber.Ctx, person string) string {
	if strings.TrimSpace(person) == "" {
		return GetPerson(c)
	}
	return person
}

func created(c *fiber.Ctx, res *ledger.Result, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRecordResponse(res))
}

// RecordPurchase godoc
// @Summary      Registrar compra en parcelas
// @Description  Crea una fila por parcela; con Crédito la primera parcela cae en el día de corte de la persona.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PurchaseRequest  true  "compra"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *RecordHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordPurchase(c.UserContext(), ledger.PurchaseInput{
		Description:       in.Description,
		InstallmentAmount: in.InstallmentAmount,
		Person:            personOrToken(c, in.Person),
		PaymentMethod:     in.PaymentMethod,
		Installments:      in.Installments,
	})
	return created(c, res, err)
}

// RecordBill godoc
// @Summary      Registrar conta
// @Description  frequency = 0 replica la conta en todos los meses existentes.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BillRequest  true  "conta"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *RecordHandler) RecordBill(c *fiber.Ctx) error {
	var in dto.BillRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordBill(c.UserContext(), ledger.BillInput{
		Description:   in.Description,
		Person:        personOrToken(c, in.Person),
		DueDay:        in.DueDay,
		Amount:        in.Amount,
		Frequency:     in.Frequency,
		PaymentMethod: in.PaymentMethod,
	})
	return created(c, res, err)
}

// RecordSalary godoc
// @Summary      Registrar salário
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SalaryRequest  true  "salário"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/salaries [post]
func (h *RecordHandler) RecordSalary(c *fiber.Ctx) error {
	var in dto.SalaryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordSalary(c.UserContext(), ledger.SalaryInput{Amount: in.Amount, Day: in.Day, Person: personOrToken(c, in.Person)})
	return created(c, res, err)
}

// RecordReceipt godoc
// @Summary      Registrar recebimento
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ReceiptRequest  true  "recebimento"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *RecordHandler) RecordReceipt(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordReceipt(c.UserContext(), ledger.ReceiptInput{
		Amount:      in.Amount,
		Day:         in.Day,
		Description: in.Description,
		Repeat:      in.Repeat,
		Person:      personOrToken(c, in.Person),
	})
	return created(c, res, err)
}

// RecordDeposit godoc
// @Summary      Depósito na poupança
// @Tags         savings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SavingsRequest  true  "depósito"
// @Success      201   {object}  dto.RecordResponse
// @Router       /api/savings/deposits [post]
func (h *RecordHandler) RecordDeposit(c *fiber.Ctx) error {
	var in dto.SavingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordDeposit(c.UserContext(), ledger.SavingsInput{Amount: in.Amount, Description: in.Description})
	return created(c, res, err)
}

// RecordWithdrawal godoc
// @Summary      Retirada da poupança
// @Tags         savings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SavingsRequest  true  "retirada"
// @Success      201   {object}  dto.RecordResponse
// @Router       /api/savings/withdrawals [post]
func (h *RecordHandler) RecordWithdrawal(c *fiber.Ctx) error {
	var in dto.SavingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordWithdrawal(c.UserContext(), ledger.SavingsInput{Amount: in.Amount, Description: in.Description})
	return created(c, res, err)
}

// SetLimit godoc
// @Summary      Definir limite mensal
// @Tags         limits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.LimitRequest  true  "limite (month = MM/YYYY)"
// @Success      200   {object}  dto.LimitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/limits [put]
func (h *RecordHandler) SetLimit(c *fiber.Ctx) error {
	var in dto.LimitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	l, err := h.uc.SetLimit(c.UserContext(), ledger.LimitInput{Person: personOrToken(c, in.Person), MonthYear: in.Month, Amount: in.Amount})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLimitResponse(l))
}

// Replicate godoc
// @Summary      Replicar recorrentes num mês
// @Description  Idempotente: salários e contas recorrentes que faltam no mês.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ReplicationRequest  true  "month = MM/YYYY"
// @Success      200   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replications [post]
func (h *RecordHandler) Replicate(c *fiber.Ctx) error {
	var in dto.ReplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	month, err := entity.ParseMonthYear(in.Month)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.rep.Replicate(c.UserContext(), month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewRecordResponse(res))
}
