package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/financas-casa/internal/application/dto"
	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
)

// viewer lo implementa *ledger.ViewerUseCase.
type viewer interface {
	Overview(ctx context.Context) ([]ledger.MonthLedger, error)
	Month(ctx context.Context, month entity.Month) (*ledger.MonthLedger, error)
}

// statementer lo implementa *ledger.StatementUseCase.
type statementer interface {
	Generate(ctx context.Context, month entity.Month) ([]byte, error)
}

// LedgerHandler expone la vista mes a mes y el extracto PDF.
type LedgerHandler struct {
	viewer    viewer
	statement statementer
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(v viewer, s statementer) *LedgerHandler {
	return &LedgerHandler{viewer: v, statement: s}
}

// Overview godoc
// @Summary      Libro completo
// @Description  Todos los meses en orden ascendente con totales acumulados.
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.MonthLedgerResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) Overview(c *fiber.Ctx) error {
	months, err := h.viewer.Overview(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MonthLedgerResponse, 0, len(months))
	for i := range months {
		out = append(out, dto.NewMonthLedgerResponse(&months[i]))
	}
	return c.JSON(out)
}

// Month godoc
// @Summary      Un mês do livro
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        year   path  int  true  "año"
// @Param        month  path  int  true  "mes (1-12)"
// @Success      200  {object}  dto.MonthLedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/{year}/{month} [get]
func (h *LedgerHandler) Month(c *fiber.Ctx) error {
	month, err := monthParam(c)
	if err != nil {
		return respondError(c, err)
	}
	ml, err := h.viewer.Month(c.UserContext(), month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMonthLedgerResponse(ml))
}

// Statement godoc
// @Summary      Extrato PDF do mês
// @Tags         ledger
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        year   path  int  true  "año"
// @Param        month  path  int  true  "mes (1-12)"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/{year}/{month}/statement.pdf [get]
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	month, err := monthParam(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.statement.Generate(c.UserContext(), month)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="extrato-%04d-%02d.pdf"`, month.Year, int(month.Month)))
	return c.Send(pdf)
}

func monthParam(c *fiber.Ctx) (entity.Month, error) {
	year, err := c.ParamsInt("year")
	if err != nil || year < 1 {
		return entity.Month{}, fmt.Errorf("%w: año %q inválido", domain.ErrValidation, c.Params("year"))
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return entity.Month{}, fmt.Errorf("%w: mes %q fuera de rango", domain.ErrValidation, c.Params("month"))
	}
	return entity.NewMonth(year, time.Month(month)), nil
}
