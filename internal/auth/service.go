// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package auth implements account entry points: signup, login, password
recovery, and provider-verified login.

# Architecture

  - Service: Orchestrates credential checks and token issuance. Every
    successful path ends in exactly one place, [Service.issueFor], so all
    issued tokens share the canonical embedded shape.
  - Repository: user records (Postgres), reset tokens (Redis, TTL).
  - Collaborators: Mailer delivers recovery mail; the OAuth handshake is an
    external identity collaborator — only the post-verification
    find-or-create lives here.

# Review Process

This service is critical for security. Any change to hashing, signup, or
login logic must be reviewed by the security team.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vicinio/vicinio/internal/community"
	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/sec"
	"github.com/vicinio/vicinio/internal/platform/validate"
	"github.com/vicinio/vicinio/internal/user"
	"github.com/vicinio/vicinio/pkg/uuidv7"
)

// # Contracts & Types

// MinPasswordLength is the shortest password signup accepts.
const MinPasswordLength = 6

// ResetTokenLength is the byte length of generated password-reset tokens.
const ResetTokenLength = 32

// TokenIssuer defines the contract for producing bearer tokens.
type TokenIssuer interface {
	// Issue signs the payload into a compact bearer token string.
	Issue(payload sec.TokenPayload) (string, error)
}

// ResetTokenRepository defines the volatile store contract for
// password-reset tokens.
type ResetTokenRepository interface {
	/*
		Set stores a reset token with its associated userID and TTL.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Execution errors
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID for a given token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: Owning userID
		  - error: [ErrResetTokenNotFound] or connectivity errors
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a used token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, token string) error
}

// Mailer delivers account mail. Transport (SMTP, provider API) is an
// external collaborator; the service only hands over the material.
type Mailer interface {
	// SendPasswordReset delivers the recovery token to the account's email.
	SendPasswordReset(context context.Context, email, token string) error
}

// Service implements the account entry use cases.
type Service struct {
	userRepository       user.Repository
	membershipRepository community.MembershipRepository
	resetTokenRepository ResetTokenRepository
	tokenIssuer          TokenIssuer
	mailer               Mailer
	resetTokenTTL        time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo user.Repository,
	membershipRepo community.MembershipRepository,
	resetRepo ResetTokenRepository,
	issuer TokenIssuer,
	mailer Mailer,
	resetTokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository:       userRepo,
		membershipRepository: membershipRepo,
		resetTokenRepository: resetRepo,
		tokenIssuer:          issuer,
		mailer:               mailer,
		resetTokenTTL:        resetTokenTTL,
	}
}

// Session is the outcome of a successful entry: the account and its
// freshly issued bearer token.
type Session struct {
	User  *user.User
	Token string
}

// # Signup Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	FirstName string
	LastName  string
	LoginID   string
	Password  string
}

/*
Signup validates, hashes, and persists a brand new account.

Description: Validation failures are reported one at a time in a fixed
precedence order (first name, last name, password, login id) — the mobile
apps surface exactly one field error per attempt.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *Session: Created account and its token
  - error: 1003, 1004, 1002, 1001, 1005, or storage failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Session, error) {

	// ── 1. Field validation, fixed precedence ────────────────────────────
	if !validate.NotBlank(input.FirstName) {
		return nil, apperr.FirstNameEmpty()
	}
	if !validate.NotBlank(input.LastName) {
		return nil, apperr.LastNameEmpty()
	}
	if len(input.Password) < MinPasswordLength {
		return nil, apperr.BadPasswordFormat()
	}
	if !validate.IsEmail(input.LoginID) {
		return nil, apperr.WrongEmailFormat()
	}

	// ── 2. Login id uniqueness ───────────────────────────────────────────
	if _, err := service.userRepository.FindByLoginID(context, input.LoginID); err == nil {
		return nil, apperr.AccountAlreadyExists()
	}

	// ── 3. Hash and persist ──────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &user.User{
		ID:           uuidv7.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		LoginID:      input.LoginID,
		Email:        input.LoginID,
		PasswordHash: hashedPassword,
		Status:       user.StatusActive,
	}

	if err := service.userRepository.Create(context, account); err != nil {
		// The unique index on login_id is the authoritative duplicate check;
		// the pre-read above only loses benign races to it.
		return nil, apperr.AccountAlreadyExists().WithCause(err)
	}

	// ── 4. Issue the first token ─────────────────────────────────────────
	return service.issueFor(context, account)
}

// # Login Flow

/*
Login validates credentials and issues a bearer token.

Description: Every failure — unknown login id, inactive account, wrong
password — collapses to 1101 so callers cannot enumerate accounts.

Parameters:
  - context: context.Context
  - loginID: string
  - password: string

Returns:
  - *Session: Account and its token
  - error: 1101 or storage failures
*/
func (service *Service) Login(context context.Context, loginID, password string) (*Session, error) {
	account, err := service.userRepository.FindByLoginID(context, loginID)
	if err != nil {
		return nil, apperr.WrongCredentials().WithCause(err)
	}

	if !account.IsActive() {
		return nil, apperr.WrongCredentials()
	}

	// Constant-time comparison inside bcrypt prevents timing probes.
	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperr.WrongCredentials()
	}

	return service.issueFor(context, account)
}

// # Provider Login

// VerifiedIdentity is the profile an external identity collaborator hands
// back after a successful provider handshake.
type VerifiedIdentity struct {
	Provider  string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

/*
LoginWithIdentity finds or creates an account for a provider-verified
identity, then issues a bearer token.

Description: Provider accounts carry no login id and no credential hash —
they can never pass local login. Matching is by email.

Parameters:
  - context: context.Context
  - identity: VerifiedIdentity

Returns:
  - *Session: Account and its token
  - error: Storage failures
*/
func (service *Service) LoginWithIdentity(context context.Context, identity VerifiedIdentity) (*Session, error) {
	account, err := service.userRepository.FindByEmail(context, identity.Email)

	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("auth_service_identity_lookup_failed: %w", err)
		}

		account = &user.User{
			ID:        uuidv7.New(),
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
			Email:     identity.Email,
			Status:    user.StatusActive,
		}

		if err := service.userRepository.Create(context, account); err != nil {
			return nil, fmt.Errorf("auth_service_identity_create_failed: %w", err)
		}
	}

	return service.issueFor(context, account)
}

// # Password Recovery

/*
ForgotPassword initiates the recovery flow.

Description: Generates a secure token, stores it in Redis with a TTL, and
hands it to the Mailer. Unlike enumeration-hardened designs, this contract
reports a missing account explicitly (1201) — the mobile apps show it.

Parameters:
  - context: context.Context
  - loginID: string

Returns:
  - error: 1001, 1201, or generation/storage failures
*/
func (service *Service) ForgotPassword(context context.Context, loginID string) error {
	if !validate.IsEmail(loginID) {
		return apperr.WrongEmailFormat()
	}

	account, err := service.userRepository.FindByLoginID(context, loginID)
	if err != nil {
		return apperr.NoAccount().WithCause(err)
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, account.ID, service.resetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	if err := service.mailer.SendPasswordReset(context, account.Email, token); err != nil {
		return fmt.Errorf("auth_service_send_reset_mail_failed: %w", err)
	}

	return nil
}

/*
ResetPassword completes the recovery flow.

Description: Resolves the token, hashes the new password, persists it, and
burns the token so it can never be replayed.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: 1102 (unknown or expired token), 1002, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return apperr.BadPasswordFormat()
	}

	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return apperr.WrongToken().WithCause(err)
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}

// issueFor reads the account's live membership set and issues a token from
// the canonical projection. Every successful entry path funnels through
// here; no other issuance site exists in this package.
func (service *Service) issueFor(context context.Context, account *user.User) (*Session, error) {
	communityIDs, err := service.membershipRepository.CommunityIDs(context, account.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_memberships_failed: %w", err)
	}

	token, err := service.tokenIssuer.Issue(sec.TokenPayload{User: user.TokenView(account, communityIDs)})
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_token_failed: %w", err)
	}

	return &Session{User: account, Token: token}, nil
}
