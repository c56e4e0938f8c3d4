package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Area is a guarded route tree.
type Area string

const (
	AreaAdmin  Area = "admin"
	AreaClient Area = "client"
)

// Session-flag keys for local-only mode.
const (
	adminSessionKey  = "session_admin"
	clientSessionKey = "session_client"
)

const tokenTTL = 24 * time.Hour

// Auth decides admin vs client vs anonymous identity. In remote mode
// a signed session token is required; in local-only mode a session
// flag in the local store stands in for it. No refresh or revocation
// beyond the token's own expiry.
type Auth struct {
	store      *Store
	local      port.LocalStore
	secret     []byte
	remoteMode bool
}

func NewAuth(store *Store, local port.LocalStore, secret string, remoteMode bool) *Auth {
	return &Auth{
		store:      store,
		local:      local,
		secret:     []byte(secret),
		remoteMode: remoteMode,
	}
}

// AdminLogin verifies credentials against the admin_users collection
// and issues an admin session token. Failures surface as
// ErrInvalidCredentials without detail, and are never retried here.
func (a *Auth) AdminLogin(ctx context.Context, email, password string) (string, error) {
	const op = "Auth.AdminLogin"

	u, ok := a.store.AdminUserByEmail(email)
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.issue(AreaAdmin, u.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !a.remoteMode {
		_ = a.local.Set(adminSessionKey, []byte(u.ID))
	}
	return token, nil
}

// ClientSession issues a client-area token for an identity the
// external auth provider already vouched for. Identity validation
// itself is delegated outside this service.
func (a *Auth) ClientSession(ctx context.Context, userID string) (string, error) {
	const op = "Auth.ClientSession"

	if userID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.issue(AreaClient, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !a.remoteMode {
		_ = a.local.Set(clientSessionKey, []byte(userID))
	}
	return token, nil
}

// Authorized reports whether a request may enter the area: a valid
// token, or the local session flag when the remote gateway is not
// configured.
func (a *Auth) Authorized(area Area, token string) bool {
	if token != "" && a.verify(area, token) {
		return true
	}
	if !a.remoteMode {
		return a.local.Has(flagKey(area))
	}
	return false
}

// Identify returns the identity behind a request: the token subject,
// or the stored session-flag value in local-only mode.
func (a *Auth) Identify(area Area, token string) (string, bool) {
	if token != "" {
		if sub, ok := a.subject(area, token); ok {
			return sub, true
		}
	}
	if !a.remoteMode {
		if v := a.local.Get(flagKey(area), nil); v != nil {
			return string(v), true
		}
	}
	return "", false
}

func (a *Auth) Logout(area Area) {
	_ = a.local.Delete(flagKey(area))
}

// CreateAdminUser hashes the password and stores the account through
// the sync store.
func (a *Auth) CreateAdminUser(
	ctx context.Context,
	name, email, password string,
	role domain.Role,
	permissions []string,
) (domain.AdminUser, error) {
	const op = "Auth.CreateAdminUser"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	u := domain.AdminUser{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		Permissions:  permissions,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	b, err := json.Marshal(u)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.store.Update(ctx, domain.CollectionAdminUsers, b); err != nil {
		// Optimistic write: the account exists locally even when the
		// remote upsert failed.
		return u, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// EnsureOwner bootstraps the first back-office account when the team
// collection is empty and credentials were supplied via config.
func (a *Auth) EnsureOwner(ctx context.Context, email, password string) error {
	const op = "Auth.EnsureOwner"

	if email == "" || password == "" || len(a.store.AdminUsers()) > 0 {
		return nil
	}

	_, err := a.CreateAdminUser(ctx, "Owner", email, password, domain.RoleOwner, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a *Auth) issue(area Area, subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(area),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.secret)
}

func (a *Auth) verify(area Area, token string) bool {
	_, ok := a.subject(area, token)
	return ok
}

func (a *Auth) subject(area Area, token string) (string, bool) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	if role, _ := claims["role"].(string); role != string(area) {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	return sub, true
}

func flagKey(area Area) string {
	if area == AreaAdmin {
		return adminSessionKey
	}
	return clientSessionKey
}
