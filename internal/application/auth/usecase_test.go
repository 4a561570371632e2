package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria para las pruebas de auth.
type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func newAuthUseCase() (*fakeUserRepo, *auth.AuthUseCase) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 15,
		Issuer:     "kardex-api",
	})
	return repo, uc
}

func TestRegisterUser(t *testing.T) {
	t.Run("registro básico con rol por defecto", func(t *testing.T) {
		repo, uc := newAuthUseCase()
		resp, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
			Name:     "Carlos Vendedor",
			Email:    "carlos@example.com",
			Password: "secreta123",
		}, "")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleUser, resp.Role)
		assert.NotEmpty(t, resp.ID)

		// la contraseña se guarda hasheada, nunca en claro
		stored, _ := repo.GetByEmail(context.Background(), "carlos@example.com")
		require.NotNil(t, stored)
		assert.NotEqual(t, "secreta123", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})

	t.Run("email duplicado", func(t *testing.T) {
		_, uc := newAuthUseCase()
		req := dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"}
		_, err := uc.RegisterUser(context.Background(), req, "")
		require.NoError(t, err)
		_, err = uc.RegisterUser(context.Background(), req, "")
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("crear admin requiere ser admin", func(t *testing.T) {
		_, uc := newAuthUseCase()
		req := dto.RegisterRequest{Email: "nuevo@example.com", Password: "secreta123", Role: entity.RoleAdmin}

		_, err := uc.RegisterUser(context.Background(), req, entity.RoleUser)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		resp, err := uc.RegisterUser(context.Background(), req, entity.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
	})

	t.Run("rol desconocido es inválido", func(t *testing.T) {
		_, uc := newAuthUseCase()
		_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
			Email: "x@example.com", Password: "secreta123", Role: "auditor",
		}, entity.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("email y password obligatorios", func(t *testing.T) {
		_, uc := newAuthUseCase()
		_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "x@example.com"}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Password: "secreta123"}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	_, uc := newAuthUseCase()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name:     "Ana Admin",
		Email:    "ana@example.com",
		Password: "secreta123",
	}, "")
	require.NoError(t, err)

	t.Run("credenciales correctas devuelven token usable", func(t *testing.T) {
		resp, err := uc.Login(context.Background(), dto.LoginRequest{
			Email:    "ana@example.com",
			Password: "secreta123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "ana@example.com", resp.User.Email)

		// el token emitido debe validar y traer el usuario y rol correctos
		userID, role, err := jwt.Parse("secreto-de-prueba", resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, userID)
		assert.Equal(t, entity.RoleUser, role)
	})

	t.Run("password incorrecta", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{
			Email:    "ana@example.com",
			Password: "otra",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("email inexistente responde igual que password mala", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{
			Email:    "nadie@example.com",
			Password: "secreta123",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
