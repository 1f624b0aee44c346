package accounts

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"cinepass-auth/internals/models"
	"cinepass-auth/internals/stores"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Sender delivers a verification code to an email address. The concrete
// implementation lives in internals/mailer; tests substitute a fake.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
}

// Service orchestrates the signup/verify/signin transactions against the two
// stores and the outbound sender. Each call is an independent transaction;
// nothing is shared across calls beyond what the stores commit.
type Service struct {
	users   stores.UserStore
	codes   stores.CodeStore
	sender  Sender
	codeTTL time.Duration
}

func NewService(users stores.UserStore, codes stores.CodeStore, sender Sender, codeTTL time.Duration) *Service {
	return &Service{
		users:   users,
		codes:   codes,
		sender:  sender,
		codeTTL: codeTTL,
	}
}

// generateCode returns 6 hex characters from 3 cryptographically random bytes.
func generateCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Signup creates an unverified credential record, stores a fresh one-time
// code and emails it. A failure after the user row is committed is not rolled
// back: the account stays registered and the caller gets an internal error;
// ResendCode is the recovery path.
func (s *Service) Signup(ctx context.Context, username, email, password string) error {
	// Advisory pre-check. The unique index on users.email is what actually
	// guards against two concurrent signups racing past this lookup.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrDuplicateAccount
	} else if !errors.Is(err, stores.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, stores.ErrDuplicateEmail) {
			return ErrDuplicateAccount
		}
		return err
	}

	return s.issueCode(ctx, email)
}

// Verify consumes a one-time code and marks the account verified. The code
// row is deleted on success, so a repeat call with the same code fails with
// ErrInvalidCode. Verified never reverts to false.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	if _, err := s.codes.FindByEmailAndCode(ctx, email, code); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	// A matching code without a credential record should not happen; signup
	// writes the user before the code.
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return fmt.Errorf("verification code matched but no account exists for %s", email)
		}
		return err
	}

	if err := s.users.SetVerified(ctx, email); err != nil {
		return err
	}

	return s.codes.DeleteByEmailAndCode(ctx, email, code)
}

// Signin checks the password against the stored hash. It is a stateless
// acknowledgment: no session or token is produced. A missing account and a
// wrong password are deliberately indistinguishable to the caller.
func (s *Service) Signin(ctx context.Context, email, password string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if !user.Verified {
		return ErrEmailNotVerified
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ResendCode issues a fresh code for an existing unverified account. It
// reports nothing about whether the account exists or is already verified;
// the handler always answers generically to prevent account enumeration.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil
		}
		return err
	}
	if user.Verified {
		return nil
	}
	return s.issueCode(ctx, email)
}

func (s *Service) issueCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	entry := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.codes.Insert(ctx, entry); err != nil {
		return err
	}

	return s.sender.SendVerificationCode(ctx, email, code)
}
