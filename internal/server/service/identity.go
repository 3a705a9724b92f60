package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/galhub/galhub/internal/server/captcha"
	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/internal/server/store"
	"github.com/galhub/galhub/pkg/cryptox"
	"github.com/galhub/galhub/pkg/idx"
	"github.com/galhub/galhub/pkg/slogx"
)

// IdentityService composes the challenge store, credential hasher, token
// service and credential store into the registration/login/password
// workflows.
type IdentityService struct {
	Store      store.Store
	Tokens     *TokenService
	Challenges *captcha.Store
	HashCost   int // bcrypt work factor, 0 selects the default
}

type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	CaptchaID   string
	CaptchaText string
}

type LoginParams struct {
	Username    string
	Password    string
	CaptchaID   string
	CaptchaText string
}

// Register creates a new identity with the default role and returns it
// together with a fresh session token. The challenge is consumed first,
// before any credential work, and the flow fails closed on any challenge
// error.
func (s *IdentityService) Register(ctx context.Context, p RegisterParams) (domain.User, string, error) {
	if err := s.consumeChallenge(p.CaptchaID, p.CaptchaText); err != nil {
		return domain.User{}, "", err
	}

	username := normalizeUsername(p.Username)
	email := normalizeEmail(p.Email)

	if err := validateUsername(username); err != nil {
		return domain.User{}, "", err
	}
	if err := validateEmail(email); err != nil {
		return domain.User{}, "", err
	}
	if err := validatePassword(p.Password); err != nil {
		return domain.User{}, "", err
	}

	// Field-specific pre-checks give useful conflict errors; the schema
	// constraint remains the arbiter for concurrent registrations.
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, "", ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("check username uniqueness: %w", err)
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("check email uniqueness: %w", err)
	}

	hash, err := cryptox.HashPassword(p.Password, s.HashCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race against a concurrent registration
			return domain.User{}, "", ErrUsernameTaken
		}
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", user.ID), slog.String("username", user.Username))

	return user, token, nil
}

// Login authenticates a user by username and password. Unknown usernames
// and wrong passwords produce the identical ErrInvalidCredentials; the
// caller must not be able to tell the cases apart.
func (s *IdentityService) Login(ctx context.Context, p LoginParams) (domain.User, string, error) {
	if err := s.consumeChallenge(p.CaptchaID, p.CaptchaText); err != nil {
		return domain.User{}, "", err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, normalizeUsername(p.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	if !cryptox.VerifyPassword(p.Password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	slogx.FromContext(ctx).Info("user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

// GetUserByID fetches a user by id.
func (s *IdentityService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// RoleByID resolves the current role of a user. Shaped for
// httpx.RequireRole: found is false when the identity no longer exists.
func (s *IdentityService) RoleByID(ctx context.Context, userID string) (string, bool, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(user.Role), true, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one. Outstanding session tokens stay valid until natural expiry;
// there is no server-side revocation.
func (s *IdentityService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if !cryptox.VerifyPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if cryptox.VerifyPassword(newPassword, user.PasswordHash) {
		return ErrSamePassword
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword, s.HashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", userID))
	return nil
}

// ResetPassword sets a new password for another user. The admin role is
// enforced by the route middleware; this workflow only forbids admins from
// resetting their own password here, which must go through ChangePassword.
func (s *IdentityService) ResetPassword(ctx context.Context, adminID, targetID, newPassword string) error {
	if adminID == targetID {
		return ErrSelfReset
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup target: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword, s.HashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, targetID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password reset by admin",
		slog.String("admin_id", adminID), slog.String("user_id", targetID))
	return nil
}

// EnsureAdmin creates the named account with the admin role, or promotes
// it if it already exists. Used for operator-driven bootstrap at startup;
// there is no challenge gate on this path.
func (s *IdentityService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	username = normalizeUsername(username)
	email = normalizeEmail(email)

	existing, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		if existing.Role == domain.RoleAdmin {
			return nil
		}
		if err := s.Store.Users().UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		slogx.FromContext(ctx).Info("existing user promoted to admin", slog.String("user_id", existing.ID))
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup admin user: %w", err)
	}

	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password, s.HashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slogx.FromContext(ctx).Info("admin account created", slog.String("user_id", user.ID))
	return nil
}

// consumeChallenge verifies and burns a captcha challenge, collapsing
// store-level outcomes into the external error taxonomy.
func (s *IdentityService) consumeChallenge(id, attempt string) error {
	if id == "" || attempt == "" {
		return ErrInvalidCaptcha
	}

	switch err := s.Challenges.Verify(id, attempt); {
	case err == nil:
		return nil
	case errors.Is(err, captcha.ErrExpired):
		return ErrCaptchaExpired
	default:
		// Absent, consumed and mismatched all look the same outward
		return ErrInvalidCaptcha
	}
}
