package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/pkg/jwt"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret             string
	ExpMinutes         int
	RememberExpMinutes int
	Issuer             string
}

// AuthUseCase casos de uso de autenticación: login, cambio y restablecimiento de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Component("auth"), now: time.Now}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Con Remember el token dura RememberExpMinutes en lugar de ExpMinutes.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	minutes := uc.jwtCfg.ExpMinutes
	if in.Remember && uc.jwtCfg.RememberExpMinutes > 0 {
		minutes = uc.jwtCfg.RememberExpMinutes
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, minutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(time.Duration(minutes) * time.Minute).UTC(),
		User:      *usecase.ToUserResponse(user),
	}, nil
}

// Me devuelve la cuenta del token; una cuenta desactivada después del login
// deja de ser válida.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	return usecase.ToUserResponse(user), nil
}

// ChangePassword reautentica con la contraseña actual y guarda la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || user.PasswordHash == "" {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("verificar contraseña: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Msg("contraseña actualizada")
	return nil
}

// RequestPasswordReset no hay servicio de correo para enviar el enlace.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, in dto.PasswordResetRequest) error {
	uc.log.Info().Str("email", in.Email).Msg("restablecimiento de contraseña solicitado sin servicio de correo")
	return domain.ErrNotImplemented
}
