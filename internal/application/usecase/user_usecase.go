package usecase

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// UserUseCase lecturas de usuarios.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetByID obtiene un usuario. Un usuario solo puede verse a sí mismo; admin
// puede ver a cualquiera.
func (uc *UserUseCase) GetByID(ctx context.Context, id, actingUserID, actingRole string) (*dto.UserResponse, error) {
	if actingRole != entity.RoleAdmin && id != actingUserID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user), nil
}

// List lista usuarios (solo admin).
func (uc *UserUseCase) List(ctx context.Context, limit, offset int, actingRole string) ([]dto.UserResponse, error) {
	if actingRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userToResponse(u))
	}
	return out, nil
}

// PromoteToAdmin asciende un usuario al rol admin (solo admin).
func (uc *UserUseCase) PromoteToAdmin(ctx context.Context, id, actingRole string) (*dto.UserResponse, error) {
	return uc.setRole(ctx, id, entity.RoleAdmin, actingRole)
}

// DemoteToUser degrada un admin al rol user (solo admin).
func (uc *UserUseCase) DemoteToUser(ctx context.Context, id, actingRole string) (*dto.UserResponse, error) {
	return uc.setRole(ctx, id, entity.RoleUser, actingRole)
}

func (uc *UserUseCase) setRole(ctx context.Context, id, role, actingRole string) (*dto.UserResponse, error) {
	if actingRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user), nil
}

func userToResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
