package repository

import (
	"context"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
)

// UserRepository define el puerto para las credenciales del hogar.
type UserRepository interface {
	// FindByPerson devuelve nil, nil si la persona no tiene usuario.
	FindByPerson(ctx context.Context, person entity.Person) (*entity.User, error)
	Upsert(ctx context.Context, u *entity.User) error
}
