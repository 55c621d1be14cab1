package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/financas-casa/internal/application/dto"
	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/jhoicas/financas-casa/pkg/jwt"
	"github.com/jhoicas/financas-casa/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLen es el largo mínimo aceptado al crear credenciales.
const minPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de las personas del hogar.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica persona/contraseña y genera el JWT. Persona desconocida, sin usuario o
// contraseña incorrecta devuelven ErrUnauthorized sin distinguir el motivo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	person, err := entity.ParsePerson(in.Person)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByPerson(ctx, person)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("person", string(person)).Msg("login sin usuario")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("person", string(person)).Msg("contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Person), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Person:    string(user.Person),
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}

// EnsureUser crea o reemplaza la credencial de una persona (usado por cmd/seed).
func (uc *AuthUseCase) EnsureUser(ctx context.Context, personName, password string) (*entity.User, error) {
	person, err := entity.ParsePerson(personName)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(password)) < minPasswordLen {
		return nil, fmt.Errorf("%w: contraseña con menos de %d caracteres", domain.ErrValidation, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Person: person, PasswordHash: string(hash)}
	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("person", string(person)).Msg("usuario listo")
	return user, nil
}
