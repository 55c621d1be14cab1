package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"check violation", &pgconn.PgError{Code: "23514", Message: "new row violates check constraint"}, domain.ErrConstraint},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrConstraint},
		{"not null", &pgconn.PgError{Code: "23502"}, domain.ErrConstraint},
		{"syntax error", &pgconn.PgError{Code: "42601"}, nil},
		{"otro", errors.New("x"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			assert.ErrorIs(t, got, tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
			} else {
				assert.NotErrorIs(t, got, domain.ErrConstraint)
				assert.NotErrorIs(t, got, domain.ErrConnection)
			}
		})
	}
	assert.NoError(t, classify("op", nil))
}

func TestPgerrClass(t *testing.T) {
	assert.Equal(t, "23", pgerrClass("23505"))
	assert.Equal(t, "", pgerrClass("2"))
}
