package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost           = 12
	resetTokenBytes      = 32
	resetKeyPrefix       = "pwreset:"
	resetPasswordSubject = "Reset password"
)

type Config struct {
	HostURL       string
	ResetTokenTTL time.Duration
}

type UserService struct {
	repo   repository.RepositoryInterface
	tokens TokenIssuer
	cache  cache.Cache
	mail   email.MailSender
	cfg    Config
}

// NewUserService - Constructor with DI
func NewUserService(
	repo repository.RepositoryInterface,
	tokens TokenIssuer,
	cache cache.Cache,
	mail email.MailSender,
	cfg Config,
) ServiceInterface {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		cache:  cache,
		mail:   mail,
		cfg:    cfg,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a reader account.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.NewReader(req.Email, req.FirstName, req.LastName, string(hash))
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	dto := u.ToDTO()
	return &dto, nil
}

func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        u.ToDTO(),
	}, nil
}

// ForgotPassword emails a reset link. Unknown emails succeed silently.
func (s *UserService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if u == nil {
		log.Debug().Str("email", req.Email).Msg("password reset requested for unknown email")
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	if err := s.cache.Set(ctx, resetKey(u.ID), hashToken(token), s.cfg.ResetTokenTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := s.resetLink(u.Email, token)
	html := fmt.Sprintf(`<p>Please reset your password by <a href="%s">clicking here</a>.</p>`, link)
	plain := "Reset your password: " + link

	return s.mail.SendEmail(ctx, u.Email, resetPasswordSubject, plain, html)
}

func (s *UserService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if u == nil {
		return model.ErrInvalidResetToken
	}

	var stored string
	found, err := s.cache.Get(ctx, resetKey(u.ID), &stored)
	if err != nil {
		return fmt.Errorf("load reset token: %w", err)
	}
	if !found || subtle.ConstantTimeCompare([]byte(stored), []byte(hashToken(req.Token))) != 1 {
		return model.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	// a token is single use
	if err := s.cache.Delete(ctx, resetKey(u.ID)); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to drop used reset token")
	}
	return nil
}

// ========================================
// PROFILE
// ========================================

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, model.ErrUserNotFound
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ========================================
// ADMIN
// ========================================

func (s *UserService) AssignRole(ctx context.Context, adminID, userID uuid.UUID, req model.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if adminID == userID {
		return model.ErrOwnRole
	}

	if err := s.repo.UpdateRole(ctx, userID, req.Role); err != nil {
		return err
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Str("user_id", userID.String()).
		Str("role", req.Role).
		Msg("user role changed")
	return nil
}

func (s *UserService) GetReadersCount(ctx context.Context) (int64, error) {
	return s.repo.CountByRole(ctx, shared.RoleReader)
}

// ========================================
// HELPERS
// ========================================

func (s *UserService) resetLink(email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	return s.cfg.HostURL + "/reset-password?" + q.Encode()
}

func resetKey(id uuid.UUID) string {
	return resetKeyPrefix + id.String()
}

func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken keeps raw tokens out of redis.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
