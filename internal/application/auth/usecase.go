package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
	"github.com/posfin/pos-finanzas-api/pkg/jwt"
)

// UseCase autentica usuarios operadores y emite tokens JWT.
type UseCase struct {
	userRepo   repository.UserRepository
	secret     string
	issuer     string
	expMinutes int
}

// NewUseCase construye el caso de uso con la configuración JWT de la app.
func NewUseCase(userRepo repository.UserRepository, secret, issuer string, expMinutes int) *UseCase {
	return &UseCase{userRepo: userRepo, secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Login valida credenciales contra el hash bcrypt almacenado y emite un JWT.
// Credenciales incorrectas y usuario inexistente devuelven el mismo error
// para no revelar qué usuarios existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Name == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.secret, user.ID, user.Name, user.Role, uc.issuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Name: user.Name, Role: user.Role}, nil
}
