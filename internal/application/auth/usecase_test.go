package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/financas-casa/internal/application/auth"
	"github.com/jhoicas/financas-casa/internal/application/dto"
	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/pkg/jwt"
	"github.com/jhoicas/financas-casa/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	users map[entity.Person]*entity.User
}

func (m *memUsers) FindByPerson(_ context.Context, p entity.Person) (*entity.User, error) {
	return m.users[p], nil
}

func (m *memUsers) Upsert(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = "id-" + string(u.Person)
	}
	m.users[u.Person] = u
	return nil
}

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{users: map[entity.Person]*entity.User{}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, logger.Nop()), repo
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.EnsureUser(context.Background(), "yuri", "segredo123")
	require.NoError(t, err)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Person: "Yuri", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "Yuri", res.Person)
	assert.Equal(t, 3600, res.ExpiresIn)

	userID, person, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "id-Yuri", userID)
	assert.Equal(t, "Yuri", person)
}

func TestLogin_Unauthorized(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.EnsureUser(context.Background(), "Marcos", "segredo123")
	require.NoError(t, err)

	for _, in := range []dto.LoginRequest{
		{Person: "Marcos", Password: "errada"},
		{Person: "Yuri", Password: "segredo123"},
		{Person: "Ana", Password: "segredo123"},
	} {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Person)
	}
}

func TestEnsureUser_Validation(t *testing.T) {
	uc, repo := newAuth()
	_, err := uc.EnsureUser(context.Background(), "Yuri", "123")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.EnsureUser(context.Background(), "Ana", "segredo123")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, repo.users)
}
