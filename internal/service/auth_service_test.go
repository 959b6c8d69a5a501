package service_test

import (
	"context"
	"testing"

	"nexopos/internal/apierror"
	"nexopos/internal/config"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"
	"nexopos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, _ bool) ([]model.Usuario, error) { return nil, nil }

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(repo *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nombre:       "Usuario de Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	repo.usuarios[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "cajero1", "secreto123", "cajero")
	svc := service.NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "cajero", resp.User.Rol)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "cajero1", claims.Username)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "cajero1", "secreto123", "cajero")
	svc := service.NewAuthService(repo, authTestConfig())

	// Wrong password and unknown user produce the same error, so the
	// response does not reveal which usernames exist.
	_, errPass := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "incorrecta"})
	require.Error(t, errPass)
	_, errUser := svc.Login(context.Background(), dto.LoginRequest{Username: "noexiste", Password: "secreto123"})
	require.Error(t, errUser)
	assert.Equal(t, errPass.Error(), errUser.Error())
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(errPass))
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUsuario(repo, "exempleado", "secreto123", "cajero")
	u.Activo = false
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "exempleado", Password: "secreto123"})
	require.Error(t, err)
}

func TestRefresh(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "supervisor1", "secreto123", "supervisor")
	svc := service.NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "supervisor1", Password: "secreto123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
}

func TestRefresh_RechazaAccessToken(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "cajero1", "secreto123", "cajero")
	svc := service.NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)

	// An access token must not be usable as a refresh token
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.AccessToken})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestRefresh_UsuarioDesactivado(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUsuario(repo, "cajero1", "secreto123", "cajero")
	svc := service.NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)

	// Deactivation invalidates outstanding refresh tokens on next use
	repo.usuarios[u.ID].Activo = false
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}

func TestParseToken_FirmaInvalida(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "cajero1", "secreto123", "cajero")
	svc := service.NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)

	otro := service.NewAuthService(repo, &config.Config{
		JWTSecret: "otra-clave", JWTExpirationHours: 8, JWTRefreshHours: 24,
	})
	_, err = otro.ParseToken(login.AccessToken)
	require.Error(t, err)
}
