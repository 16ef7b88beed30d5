// Copyright (c) 2026 Vicinio. All rights reserved.

// Package sec provides cryptographic primitives and bearer token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. The [TokenCodec] is the ONLY component allowed to produce
// or consume bearer tokens; every issuance site goes through the one canonical
// [TokenPayload] shape so the embedded snapshot never drifts between routes.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Failure Modes

var (
	// ErrNoSecret is returned by [NewTokenCodec] when no signing secret is
	// configured. It is fatal at process startup, never per-request.
	ErrNoSecret = errors.New("sec: no token signing secret configured")

	// ErrInvalidToken covers forged signatures and malformed token structure.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrExpiredToken marks tokens that verified but are past their expiry.
	// Callers collapse it with [ErrInvalidToken] on the wire; the distinction
	// exists purely for observability.
	ErrExpiredToken = errors.New("sec: expired token")
)

// TokenUser is the snapshot of a user embedded inside every bearer token.
//
// # Why embed membership?
//
// Carrying the community memberships and the current community inside the
// signed payload lets every protected route authorize against token state
// WITHOUT a database read. The price is staleness: the snapshot is a
// point-in-time copy, so every handler that mutates membership must re-issue
// the token in the same response.
//
// # Size Discipline
//
// Volatile or large user fields (interests, expertise, audit timestamps) are
// deliberately excluded to bound token size. [user.TokenView] is the single
// projection that builds this struct — call sites never assemble it by hand.
type TokenUser struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	LoginID          string   `json:"loginId,omitempty"` // absent for provider-created accounts
	Email            string   `json:"email,omitempty"`
	Status           int      `json:"status"`
	Communities      []string `json:"communities,omitempty"`
	CurrentCommunity string   `json:"currentCommunity,omitempty"`
}

// FullName returns "First Last" for display snapshots (e.g. post likes).
func (u TokenUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// TokenPayload is the complete decoded content of a bearer token.
type TokenPayload struct {
	jwt.RegisteredClaims

	User TokenUser `json:"user"`
}

// CurrentCommunityID reads the embedded current community.
//
// The second return reports presence: a user who has not joined or switched
// into any community yet is a valid state, not an error.
func (p *TokenPayload) CurrentCommunityID() (string, bool) {
	if p.User.CurrentCommunity == "" {
		return "", false
	}
	return p.User.CurrentCommunity, true
}

// Communities returns the embedded membership set, never nil.
func (p *TokenPayload) Communities() []string {
	if p.User.Communities == nil {
		return []string{}
	}
	return p.User.Communities
}

// IsMemberOf reports whether communityID is in the token-embedded membership set.
func (p *TokenPayload) IsMemberOf(communityID string) bool {
	for _, id := range p.User.Communities {
		if id == communityID {
			return true
		}
	}
	return false
}

// # Token Codec

// TokenCodec signs and verifies self-contained bearer tokens using HMAC-SHA256.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec creates a codec bound to the process-wide signing secret.
//
// # Parameters
//   - secret: The HMAC signing key. Must be non-empty.
//   - issuer: The 'iss' claim stamped on every issued token.
//   - ttl: Token lifetime. Zero disables the expiry claim.
//
// # Returns
//   - [ErrNoSecret] if the secret is empty (configuration error, fail fast).
func NewTokenCodec(secret, issuer string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue serializes and signs the payload into a compact three-part
// (header.payload.signature) token string.
func (codec *TokenCodec) Issue(payload TokenPayload) (string, error) {
	currentTime := time.Now()
	payload.Issuer = codec.issuer
	payload.Subject = payload.User.ID
	payload.IssuedAt = jwt.NewNumericDate(currentTime)
	if codec.ttl > 0 {
		payload.ExpiresAt = jwt.NewNumericDate(currentTime.Add(codec.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &payload)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a token string and returns the
// decoded payload.
//
// # Returns
//   - [ErrExpiredToken] when the token verified but is past its expiry.
//   - [ErrInvalidToken] for every other failure (forged, truncated, wrong alg).
func (codec *TokenCodec) Verify(tokenString string) (*TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenPayload{}, func(token *jwt.Token) (interface{}, error) {
		return codec.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	payload, ok := token.Claims.(*TokenPayload)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return payload, nil
}

// # Typed Accessors
//
// Convenience projections over Verify for call sites that hold only the raw
// token string. Absent optional fields are reported as zero values, distinct
// from token-invalid failures which always surface as an error.

// User returns the embedded user snapshot.
func (codec *TokenCodec) User(tokenString string) (TokenUser, error) {
	payload, err := codec.Verify(tokenString)
	if err != nil {
		return TokenUser{}, err
	}
	return payload.User, nil
}

// UserID returns the embedded user id.
//
// Unlike the optional projections below, a missing id means the token was not
// produced by our issuance path and is treated as invalid.
func (codec *TokenCodec) UserID(tokenString string) (string, error) {
	payload, err := codec.Verify(tokenString)
	if err != nil {
		return "", err
	}
	if payload.User.ID == "" {
		return "", fmt.Errorf("%w: payload has no user id", ErrInvalidToken)
	}
	return payload.User.ID, nil
}

// UserEmail returns the embedded email, or "" when the field is absent.
func (codec *TokenCodec) UserEmail(tokenString string) (string, error) {
	user, err := codec.User(tokenString)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

// UserLoginID returns the embedded login id, or "" for accounts created via
// an external identity provider.
func (codec *TokenCodec) UserLoginID(tokenString string) (string, error) {
	user, err := codec.User(tokenString)
	if err != nil {
		return "", err
	}
	return user.LoginID, nil
}

// UserFullName returns the embedded "First Last" display name.
func (codec *TokenCodec) UserFullName(tokenString string) (string, error) {
	user, err := codec.User(tokenString)
	if err != nil {
		return "", err
	}
	return user.FullName(), nil
}

// CurrentCommunityID returns the embedded current community id.
// The boolean reports presence; having no current community is not an error.
func (codec *TokenCodec) CurrentCommunityID(tokenString string) (string, bool, error) {
	payload, err := codec.Verify(tokenString)
	if err != nil {
		return "", false, err
	}
	id, ok := payload.CurrentCommunityID()
	return id, ok, nil
}

// UserCommunities returns the embedded membership set, empty if absent.
func (codec *TokenCodec) UserCommunities(tokenString string) ([]string, error) {
	payload, err := codec.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return payload.Communities(), nil
}
