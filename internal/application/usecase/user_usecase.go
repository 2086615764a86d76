package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/auth"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

// UserUseCase administración de usuarios. Las reglas de quién-puede-qué:
//   - listar: solo admin (lo impone la tabla de permisos del router).
//   - ver / editar / cambiar contraseña: admin o el propio usuario.
//   - cambiar role o is_active: solo admin.
//
// Los usuarios nunca se eliminan físicamente; se desactivan vía is_active.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios (solo admin).
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID devuelve un usuario si el caller es admin o el propio usuario.
func (uc *UserUseCase) GetByID(callerID, callerRole, id string) (*dto.UserResponse, error) {
	if callerRole != entity.RoleAdmin && callerID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update actualiza nombre/email; role e is_active solo si el caller es admin.
func (uc *UserUseCase) Update(callerID, callerRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if callerRole != entity.RoleAdmin && callerID != id {
		return nil, domain.ErrForbidden
	}
	if (in.Role != nil || in.IsActive != nil) && callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
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
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// ChangePassword cambia la contraseña. El propio usuario debe aportar la
// contraseña actual; un admin puede restablecer la de otro usuario sin ella.
func (uc *UserUseCase) ChangePassword(callerID, callerRole, id string, in dto.ChangePasswordRequest) error {
	if callerRole != entity.RoleAdmin && callerID != id {
		return domain.ErrForbidden
	}
	if len(in.NewPassword) < 6 {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if callerID == id {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return domain.ErrUnauthorized
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}
