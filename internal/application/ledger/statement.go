package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
)

// StatementUseCase genera el extracto PDF de un mes.
type StatementUseCase struct {
	viewer    *ViewerUseCase
	generator StatementGenerator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(viewer *ViewerUseCase, generator StatementGenerator) *StatementUseCase {
	return &StatementUseCase{viewer: viewer, generator: generator}
}

// Generate devuelve los bytes del PDF del mes.
func (uc *StatementUseCase) Generate(ctx context.Context, month entity.Month) ([]byte, error) {
	ml, err := uc.viewer.Month(ctx, month)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateStatement(ctx, ml)
	if err != nil {
		return nil, fmt.Errorf("extracto %s: %w", month, err)
	}
	return pdf, nil
}
