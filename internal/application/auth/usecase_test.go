package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturio/internal/application/auth"
	"github.com/jhoicas/facturio/internal/application/dto"
	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
)

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "facturio-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login.
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioYEmiteToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "claire@example.fr",
		Password: "demo1234",
		Name:     "Claire Dupont",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "claire@example.fr", resp.User.Email)
}

func TestRegister_EmailDuplicado_Conflict(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	in := dto.RegisterRequest{Email: "claire@example.fr", Password: "demo1234"}
	_, err := uc.Register(in)
	require.NoError(t, err)

	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "claire@example.fr", Password: "demo1234"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "claire@example.fr", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.fr", Password: "demo1234"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restauración de sesión.
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelveUsuarioSinHash(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	registered, err := uc.Register(dto.RegisterRequest{
		Email:    "claire@example.fr",
		Password: "demo1234",
		Name:     "Claire Dupont",
	})
	require.NoError(t, err)

	me, err := uc.Me(registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, me.ID)
	assert.Equal(t, "claire@example.fr", me.Email)
	assert.Equal(t, "Claire Dupont", me.Name)
}

func TestMe_UsuarioInexistente_NotFound(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Me("user-fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
