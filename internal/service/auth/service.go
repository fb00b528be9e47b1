package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/repository"
	"github.com/vitacare/hospital-api/pkg/apperror"
	"github.com/vitacare/hospital-api/pkg/auth"
	"github.com/vitacare/hospital-api/pkg/security"
)

// Session lifetimes issued as the vhaToken cookie.
const (
	UserTokenTTL  = 30 * 24 * time.Hour
	AdminTokenTTL = 7 * 24 * time.Hour
)

type Service struct {
	accountRepo repository.AccountRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
}

// Session is a signed token plus its lifetime, for the cookie writer.
type Session struct {
	Token   string
	TTL     time.Duration
	Account *model.PublicAccount
}

func NewService(accountRepo repository.AccountRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		accountRepo: accountRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
	}
}

// Register creates a patient account. Duplicate emails are rejected by the
// store's unique constraint.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperror.Validation("password too short", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	account := &model.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RolePatient,
		Gender:       req.Gender,
		Contact:      req.Contact,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("user already exists", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to create account: %w", err))
	}

	return account, nil
}

// Login authenticates patients and doctors. Admin accounts are invisible on
// this path and must use AdminLogin.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up account: %w", err))
	}
	if account.Role == model.RoleAdmin {
		return nil, apperror.NotFound("user", nil)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials", err)
	}

	token, err := s.jwtSvc.Sign(account.ID, string(account.Role), UserTokenTTL)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to sign token: %w", err))
	}

	return &Session{Token: token, TTL: UserTokenTTL, Account: account.Public()}, nil
}

// AdminLogin authenticates admin accounts only.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up account: %w", err))
	}
	if account.Role != model.RoleAdmin {
		return nil, apperror.Unauthorized("invalid credentials", nil)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials", err)
	}

	token, err := s.jwtSvc.Sign(account.ID, string(account.Role), AdminTokenTTL)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to sign token: %w", err))
	}

	return &Session{Token: token, TTL: AdminTokenTTL, Account: account.Public()}, nil
}

// ResetPassword replaces the caller's credential after checking the current
// one.
func (s *Service) ResetPassword(ctx context.Context, accountID uuid.UUID, currentPassword, newPassword string) error {
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("user", err)
		}
		return apperror.Internal(fmt.Errorf("failed to look up account: %w", err))
	}

	if err := s.hasher.Compare(account.PasswordHash, currentPassword); err != nil {
		return apperror.Unauthorized("current password is incorrect", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return apperror.Validation("password too short", err)
		}
		return apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	if err := s.accountRepo.UpdatePassword(ctx, accountID, hash); err != nil {
		return apperror.Internal(fmt.Errorf("failed to update password: %w", err))
	}
	return nil
}

// VerifyToken parses and verifies a session token.
func (s *Service) VerifyToken(token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.Verify(token)
	if err != nil {
		return nil, apperror.Unauthorized("invalid token", err)
	}
	return claims, nil
}
