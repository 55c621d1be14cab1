package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// FindByPerson obtiene el usuario de una persona; nil, nil si no existe.
func (r *UserRepo) FindByPerson(ctx context.Context, person entity.Person) (*entity.User, error) {
	query := `SELECT id::text, pessoa, senha_hash, created_at FROM usuarios WHERE pessoa = $1`
	var (
		u entity.User
		p string
	)
	err := r.q.QueryRow(ctx, query, string(person)).Scan(&u.ID, &p, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get usuario", err)
	}
	u.Person = entity.Person(p)
	return &u, nil
}

// Upsert crea el usuario o reemplaza su contraseña.
func (r *UserRepo) Upsert(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `
		INSERT INTO usuarios (id, pessoa, senha_hash)
		VALUES ($1::uuid, $2, $3)
		ON CONFLICT (pessoa) DO UPDATE SET senha_hash = EXCLUDED.senha_hash
		RETURNING id::text, created_at`
	err := r.q.QueryRow(ctx, query, u.ID, string(u.Person), u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return classify("upsert usuario", err)
	}
	return nil
}
