package service

import (
	"context"
	"time"

	"nexopos/internal/apierror"
	"nexopos/internal/config"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload carried by access and refresh tokens.
type Claims struct {
	UsuarioID  string  `json:"uid"`
	Username   string  `json:"username"`
	Rol        string  `json:"rol"`
	SucursalID *string `json:"sid,omitempty"`
	TokenType  string  `json:"typ"` // "access" | "refresh"
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	ParseToken(tokenStr string) (*Claims, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apierror.Validation("usuario o contraseña incorrectos")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.Validation("usuario o contraseña incorrectos")
	}
	return s.issueTokens(u)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims, err := s.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, apierror.Validation("refresh token inválido")
	}
	uid, err := uuid.Parse(claims.UsuarioID)
	if err != nil {
		return nil, apierror.Validation("refresh token inválido")
	}
	u, err := s.repo.FindByID(ctx, uid)
	if err != nil || !u.Activo {
		return nil, apierror.Validation("usuario inactivo o inexistente")
	}
	return s.issueTokens(u)
}

func (s *authService) issueTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.sign(u, "access", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(u, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	var sucursalID *string
	if u.SucursalID != nil {
		s := u.SucursalID.String()
		sucursalID = &s
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UsuarioResponse{
			ID:         u.ID.String(),
			Username:   u.Username,
			Nombre:     u.Nombre,
			Rol:        u.Rol,
			SucursalID: sucursalID,
		},
	}, nil
}

func (s *authService) sign(u *model.Usuario, typ string, ttl time.Duration) (string, error) {
	var sucursalID *string
	if u.SucursalID != nil {
		sid := u.SucursalID.String()
		sucursalID = &sid
	}
	now := time.Now()
	claims := Claims{
		UsuarioID:  u.ID.String(),
		Username:   u.Username,
		Rol:        u.Rol,
		SucursalID: sucursalID,
		TokenType:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
