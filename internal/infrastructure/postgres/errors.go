package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/financas-casa/internal/domain"
)

// classify traduce errores de pgx a la taxonomía del dominio: SQLSTATE clase 23 es
// ErrConstraint y los fallos de conexión son ErrConnection. El error original queda envuelto.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrClass(pgErr.Code) == "23" {
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConstraint, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConnection, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func pgerrClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
