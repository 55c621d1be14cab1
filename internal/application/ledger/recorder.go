package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/pkg/logger"
	"github.com/shopspring/decimal"
)

// maxRepeat acota parcelas y repeticiones de recebimentos.
const maxRepeat = 360

// RecorderUseCase agrupa las operaciones de registro (compras, contas, salarios, recebimentos,
// poupança y límites). Cada operación valida antes de escribir y corre en una sola transacción.
type RecorderUseCase struct {
	txRunner   TxRunner
	replicator *Replicator
	anchors    domledger.CreditAnchors
	loc        *time.Location
	now        func() time.Time
	log        *logger.Logger
}

// RecorderOption ajusta el caso de uso (reloj, zona horaria, días de corte).
type RecorderOption func(*RecorderUseCase)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) RecorderOption {
	return func(uc *RecorderUseCase) { uc.now = now }
}

// WithLocation fija la zona horaria en la que se decide "hoy".
func WithLocation(loc *time.Location) RecorderOption {
	return func(uc *RecorderUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// WithCreditAnchors reemplaza los días de corte por persona.
func WithCreditAnchors(anchors domledger.CreditAnchors) RecorderOption {
	return func(uc *RecorderUseCase) { uc.anchors = anchors }
}

// NewRecorderUseCase construye el caso de uso.
func NewRecorderUseCase(txRunner TxRunner, replicator *Replicator, log *logger.Logger, opts ...RecorderOption) *RecorderUseCase {
	uc := &RecorderUseCase{
		txRunner:   txRunner,
		replicator: replicator,
		anchors:    domledger.DefaultCreditAnchors(),
		loc:        time.UTC,
		now:        time.Now,
		log:        log.Component("recorder"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Result resume lo que escribió una acción del usuario.
type Result struct {
	BatchID    string `json:"batch_id"`
	Inserted   int    `json:"inserted"`
	Replicated int    `json:"replicated"`
}

// today devuelve la fecha calendario actual en la zona del hogar.
func (uc *RecorderUseCase) today() time.Time {
	return entity.DateOnly(uc.now().In(uc.loc))
}

// fail registra el error en el borde de la operación y lo devuelve sin cambios.
func (uc *RecorderUseCase) fail(op string, err error) error {
	uc.log.Error().Err(err).Str("op", op).Msg("operación fallida")
	return err
}

func (uc *RecorderUseCase) done(op string, res *Result) {
	uc.log.Info().
		Str("op", op).
		Str("batch_id", res.BatchID).
		Int("inserted", res.Inserted).
		Int("replicated", res.Replicated).
		Msg("movimientos registrados")
}

func requireDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: descripción requerida", domain.ErrValidation)
	}
	return s, nil
}

func requireNonZero(field string, v decimal.Decimal) error {
	if v.IsZero() {
		return fmt.Errorf("%w: %s no puede ser cero", domain.ErrValidation, field)
	}
	return nil
}

func requireDay(field string, day int) error {
	if !domledger.ValidDay(day) {
		return fmt.Errorf("%w: %s=%d fuera de 1..31", domain.ErrValidation, field, day)
	}
	return nil
}

func requireRepeat(field string, n int) error {
	if n < 1 || n > maxRepeat {
		return fmt.Errorf("%w: %s=%d fuera de 1..%d", domain.ErrValidation, field, n, maxRepeat)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return entity.StringPtr(s)
}
