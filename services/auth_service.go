package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/Ajmalajjuca/Bite-check/logger"
	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	verificationCodeLength = 6
	verificationCodeTTL    = 15 * time.Minute
	minPasswordLength      = 8
)

type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

type AuthStatus string

const (
	StatusComplete          AuthStatus = "complete"
	StatusNeedsVerification AuthStatus = "needs_verification"
)

// AuthResult is what a sign-up, verification or sign-in step produced.
// SessionID and Token are only set once Status is complete.
type AuthResult struct {
	Status    AuthStatus `json:"status"`
	UserID    string     `json:"user_id,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Token     string     `json:"token,omitempty"`
}

type AuthService struct {
	db       *gorm.DB
	mailer   Mailer
	secret   []byte
	tokenTTL time.Duration
	log      *logger.Logger
}

func NewAuthService(db *gorm.DB, mailer Mailer, secret []byte, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{db: db, mailer: mailer, secret: secret, tokenTTL: tokenTTL, log: log}
}

// SignUp creates an unverified account and emails it a code.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if msgs := validateCredentials(email, password); len(msgs) > 0 {
		return nil, newAuthError(http.StatusUnprocessableEntity, msgs...)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil && existing.Verified:
		return nil, newAuthError(http.StatusConflict, "That email address is taken. Please try another.")
	case err == nil:
		// unfinished sign-up: take the new password and send a fresh code
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = models.User{ID: uuid.NewString(), Email: email}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	existing.Password = hashed

	if err := s.issueCode(ctx, &existing); err != nil {
		return nil, err
	}
	return &AuthResult{Status: StatusNeedsVerification, UserID: existing.ID}, nil
}

// VerifySignUp checks the emailed code and opens the first session.
func (s *AuthService) VerifySignUp(ctx context.Context, email, code string) (*AuthResult, error) {
	user, err := s.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user.VerificationCode == "" || strings.TrimSpace(code) != user.VerificationCode {
		return nil, newAuthError(http.StatusUnauthorized, "Incorrect code")
	}
	if time.Now().After(user.VerificationExpires) {
		return nil, newAuthError(http.StatusUnauthorized, "This verification code has expired. Request a new one.")
	}

	user.Verified = true
	user.VerificationCode = ""
	user.VerificationExpires = time.Time{}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return s.openSession(ctx, user)
}

// SignIn checks the password. Accounts that never finished verification get
// a new code instead of a session.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (*AuthResult, error) {
	user, err := s.findByEmail(ctx, normalizeEmail(identifier))
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, newAuthError(http.StatusUnauthorized, "Password is incorrect. Try again, or use another method.")
	}

	if !user.Verified {
		if err := s.issueCode(ctx, user); err != nil {
			return nil, err
		}
		return &AuthResult{Status: StatusNeedsVerification, UserID: user.ID}, nil
	}
	return s.openSession(ctx, user)
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND active = ?", sessionID, true).
		Updates(map[string]interface{}{"active": false, "revoked_at": now})
	if res.Error != nil {
		return fmt.Errorf("revoke session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveSession resolves a session id to its user, failing for revoked
// sessions.
func (s *AuthService) ActiveSession(ctx context.Context, sessionID string) (*models.User, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND active = ?", sessionID, true).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	sess := models.Session{ID: uuid.NewString(), UserID: user.ID, Active: true}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := utils.GenerateJWT(s.secret, user.ID, sess.ID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	s.log.Info("session %s opened for %s", sess.ID, user.ID)

	return &AuthResult{Status: StatusComplete, UserID: user.ID, SessionID: sess.ID, Token: token}, nil
}

func (s *AuthService) issueCode(ctx context.Context, user *models.User) error {
	code, err := utils.GenerateNumericCode(verificationCodeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	user.VerificationCode = code
	user.VerificationExpires = time.Now().Add(verificationCodeTTL)

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		s.log.Error("send verification code to %s: %v", user.Email, err)
		return newAuthError(http.StatusBadGateway, "We couldn't send your verification code. Please try again.")
	}
	return nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newAuthError(http.StatusNotFound, "Couldn't find your account.")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials lists every problem with a sign-up form.
func validateCredentials(email, password string) []string {
	var msgs []string
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		msgs = append(msgs, "Enter a valid email address.")
	}
	if len(password) < minPasswordLength {
		msgs = append(msgs, fmt.Sprintf("Passwords must be %d characters or more.", minPasswordLength))
	}
	return msgs
}
