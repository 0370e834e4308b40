package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// UserUseCase administración de cuentas (solo administradores).
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log.Component("users"), now: time.Now}
}

// List devuelve todas las cuentas.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Create hashea la contraseña con bcrypt y persiste la cuenta. El rol por
// defecto es empleado.
func (uc *UserUseCase) Create(ctx context.Context, adminID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("admin_id", adminID).Str("user_id", user.ID).Str("role", role).Msg("cuenta creada")
	return ToUserResponse(user), nil
}

// Update aplica cambios parciales. Un administrador no puede desactivarse ni
// quitarse el rol a sí mismo. Password asigna una contraseña nueva sin pedir la
// actual.
func (uc *UserUseCase) Update(ctx context.Context, adminID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if id == adminID {
		if in.IsActive != nil && !*in.IsActive {
			return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrConflict)
		}
		if in.Role != nil && *in.Role != entity.RoleAdmin {
			return nil, fmt.Errorf("%w: no puede quitarse el rol de administrador", domain.ErrConflict)
		}
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !strings.EqualFold(email, user.Email) {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	passwordSet := false
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		passwordSet = true
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("admin_id", adminID).Str("user_id", id).Bool("password_set", passwordSet).Msg("cuenta actualizada")
	return ToUserResponse(user), nil
}

// Delete elimina la cuenta y, en cascada, sus marcaciones.
func (uc *UserUseCase) Delete(ctx context.Context, adminID, id string) error {
	if id == adminID {
		return fmt.Errorf("%w: no puede eliminar su propia cuenta", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Warn().Str("admin_id", adminID).Str("user_id", id).Msg("cuenta eliminada")
	return nil
}

// AdminResetPassword restablecer la contraseña de otra cuenta exige un
// servicio de correo que esta API no tiene.
func (uc *UserUseCase) AdminResetPassword(ctx context.Context, adminID, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return domain.ErrNotImplemented
}

// BootstrapAdmin datos del administrador inicial (ADMIN_*).
type BootstrapAdmin struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin garantiza que exista al menos un administrador activo con
// contraseña. Si no lo hay, crea la cuenta configurada; si el email ya existe
// (por ejemplo tras restaurar un respaldo) la habilita como administrador.
// Devuelve true si modificó algo.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, boot BootstrapAdmin) (bool, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("listar usuarios: %w", err)
	}
	for _, u := range users {
		if u.IsAdmin() && u.IsActive && u.PasswordHash != "" {
			return false, nil
		}
	}
	email := strings.TrimSpace(boot.Email)
	if email == "" || boot.Password == "" {
		uc.log.Warn().Msg("no hay administrador con acceso; defina ADMIN_EMAIL y ADMIN_PASSWORD")
		return false, nil
	}
	hash, err := hashPassword(boot.Password)
	if err != nil {
		return false, err
	}

	now := uc.now()
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		existing.PasswordHash = hash
		existing.Role = entity.RoleAdmin
		existing.IsActive = true
		existing.UpdatedAt = now
		if err := uc.repo.Update(ctx, existing); err != nil {
			return false, err
		}
		uc.log.Warn().Str("user_id", existing.ID).Str("email", email).Msg("administrador inicial habilitado sobre cuenta existente")
		return true, nil
	}

	name := strings.TrimSpace(boot.Name)
	if name == "" {
		name = "Administrador"
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, admin); err != nil {
		return false, err
	}
	uc.log.Warn().Str("user_id", admin.ID).Str("email", email).Msg("administrador inicial creado")
	return true, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ToUserResponse convierte la entidad a su DTO (nunca expone el hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
