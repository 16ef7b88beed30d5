// Copyright (c) 2026 Vicinio. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicinio/vicinio/internal/auth"
	"github.com/vicinio/vicinio/internal/community"
	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/sec"
	"github.com/vicinio/vicinio/internal/user"
)

const bakerStreetID = "0191c2a8-3b5e-7000-8000-4f2d90aa0001"

// # In-Memory Fakes

type fakeUserRepo struct {
	byID map[string]*user.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (r *fakeUserRepo) FindByLoginID(_ context.Context, loginID string) (*user.User, error) {
	for _, u := range r.byID {
		if u.LoginID != "" && u.LoginID == loginID {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.byID {
		if u.LoginID != "" && existing.LoginID == u.LoginID {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SetCurrentCommunity(_ context.Context, userID, communityID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.CurrentCommunity = communityID
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = newHash
	return nil
}

type fakeMembershipRepo struct {
	byUser map[string][]string
}

func (r *fakeMembershipRepo) Add(_ context.Context, userID, communityID string) error {
	r.byUser[userID] = append(r.byUser[userID], communityID)
	return nil
}

func (r *fakeMembershipRepo) CommunityIDs(_ context.Context, userID string) ([]string, error) {
	ids := r.byUser[userID]
	if ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

func (r *fakeMembershipRepo) ListForUser(_ context.Context, userID string) ([]*community.Community, error) {
	communities := make([]*community.Community, 0, len(r.byUser[userID]))
	for _, id := range r.byUser[userID] {
		communities = append(communities, &community.Community{ID: id})
	}
	return communities, nil
}

type fakeResetTokenRepo struct {
	byToken map[string]string
}

func (r *fakeResetTokenRepo) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.byToken[token] = userID
	return nil
}

func (r *fakeResetTokenRepo) Get(_ context.Context, token string) (string, error) {
	if userID, ok := r.byToken[token]; ok {
		return userID, nil
	}
	return "", auth.ErrResetTokenNotFound
}

func (r *fakeResetTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.byToken, token)
	return nil
}

type fakeIssuer struct {
	issued []sec.TokenPayload
}

func (i *fakeIssuer) Issue(payload sec.TokenPayload) (string, error) {
	i.issued = append(i.issued, payload)
	return fmt.Sprintf("token-%d", len(i.issued)), nil
}

type fakeMailer struct {
	sentTo    []string
	lastToken string
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.sentTo = append(m.sentTo, email)
	m.lastToken = token
	return nil
}

// # Fixture

type fixture struct {
	service     *auth.Service
	users       *fakeUserRepo
	memberships *fakeMembershipRepo
	resetTokens *fakeResetTokenRepo
	issuer      *fakeIssuer
	mailer      *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:       &fakeUserRepo{byID: map[string]*user.User{}},
		memberships: &fakeMembershipRepo{byUser: map[string][]string{}},
		resetTokens: &fakeResetTokenRepo{byToken: map[string]string{}},
		issuer:      &fakeIssuer{},
		mailer:      &fakeMailer{},
	}
	f.service = auth.NewService(f.users, f.memberships, f.resetTokens, f.issuer, f.mailer, 30*time.Minute)
	return f
}

func sherlockInput() auth.SignupInput {
	return auth.SignupInput{
		FirstName: "Sherlock",
		LastName:  "Holmes",
		LoginID:   "sherlock@221b.baker.str",
		Password:  "123456",
	}
}

// # Signup

/*
TestSignup verifies enrollment: hashed credentials, active status, and an
issued token whose snapshot has no memberships yet.
*/
func TestSignup(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)

	// 1. Account shape.
	account := session.User
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, user.StatusActive, account.Status)
	assert.Equal(t, "sherlock@221b.baker.str", account.LoginID)
	assert.Equal(t, account.LoginID, account.Email)

	// 2. Credential is hashed, never stored raw.
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "123456", account.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("123456", account.PasswordHash))

	// 3. Token embeds the fresh, community-less snapshot.
	assert.NotEmpty(t, session.Token)
	require.Len(t, f.issuer.issued, 1)
	assert.Empty(t, f.issuer.issued[0].User.Communities)
}

/*
TestSignup_ValidationPrecedence verifies that field errors surface one at
a time in the fixed order: first name, last name, password, login id.
*/
func TestSignup_ValidationPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*auth.SignupInput)
		wantCode int
	}{
		{"blank_first_name", func(in *auth.SignupInput) { in.FirstName = "  " }, apperr.CodeFirstNameEmpty},
		{"blank_last_name", func(in *auth.SignupInput) { in.LastName = "" }, apperr.CodeLastNameEmpty},
		{"short_password", func(in *auth.SignupInput) { in.Password = "12345" }, apperr.CodeBadPasswordFormat},
		{"malformed_login_id", func(in *auth.SignupInput) { in.LoginID = "not-an-email" }, apperr.CodeWrongEmailFormat},
		{
			// All fields bad: the first gate in the order wins.
			"first_gate_wins",
			func(in *auth.SignupInput) { in.FirstName = ""; in.LastName = ""; in.Password = "x"; in.LoginID = "x" },
			apperr.CodeFirstNameEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			input := sherlockInput()
			tt.mutate(&input)

			session, err := f.service.Signup(context.Background(), input)

			assert.Nil(t, session)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
			assert.Empty(t, f.users.byID, "no account may be persisted on a validation failure")
		})
	}
}

/*
TestSignup_Duplicate verifies that a second signup under the same login id
is rejected.
*/
func TestSignup_Duplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)

	session, err := f.service.Signup(context.Background(), sherlockInput())
	assert.Nil(t, session)
	assert.Equal(t, apperr.CodeAccountAlreadyExists, apperr.CodeOf(err))
	assert.Len(t, f.users.byID, 1)
}

// # Login

/*
TestLogin verifies credential checks, including the collapse of every
failure mode into WRONG CREDENTIALS.
*/
func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)

	// 1. Correct credentials issue a session.
	session, err := f.service.Login(context.Background(), "sherlock@221b.baker.str", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "Sherlock", session.User.FirstName)

	// 2. Wrong password, unknown account: same code either way.
	_, err = f.service.Login(context.Background(), "sherlock@221b.baker.str", "wrong-pass")
	assert.Equal(t, apperr.CodeWrongCredentials, apperr.CodeOf(err))

	_, err = f.service.Login(context.Background(), "moriarty@reichenbach.ch", "123456")
	assert.Equal(t, apperr.CodeWrongCredentials, apperr.CodeOf(err))
}

/*
TestLogin_InactiveAccount verifies suspended accounts cannot authenticate
even with correct credentials.
*/
func TestLogin_InactiveAccount(t *testing.T) {
	f := newFixture(t)
	session, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)

	f.users.byID[session.User.ID].Status = 0

	_, err = f.service.Login(context.Background(), "sherlock@221b.baker.str", "123456")
	assert.Equal(t, apperr.CodeWrongCredentials, apperr.CodeOf(err))
}

/*
TestLogin_EmbedsLiveMemberships verifies that login reads the persisted
membership set into the issued token.
*/
func TestLogin_EmbedsLiveMemberships(t *testing.T) {
	f := newFixture(t)
	session, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)

	require.NoError(t, f.memberships.Add(context.Background(), session.User.ID, bakerStreetID))

	_, err = f.service.Login(context.Background(), "sherlock@221b.baker.str", "123456")
	require.NoError(t, err)

	embedded := f.issuer.issued[len(f.issuer.issued)-1].User
	assert.Equal(t, []string{bakerStreetID}, embedded.Communities)
}

// # Provider Login

/*
TestLoginWithIdentity verifies find-or-create by email: provider accounts
get no login id and no credential hash, and a repeat handshake reuses the
same account.
*/
func TestLoginWithIdentity(t *testing.T) {
	f := newFixture(t)

	identity := auth.VerifiedIdentity{
		Provider:  "google",
		Email:     "watson@example.com",
		FirstName: "John",
		LastName:  "Watson",
	}

	first, err := f.service.LoginWithIdentity(context.Background(), identity)
	require.NoError(t, err)

	assert.Empty(t, first.User.LoginID)
	assert.Empty(t, first.User.PasswordHash)
	assert.Equal(t, user.StatusActive, first.User.Status)

	// Provider accounts can never pass local login.
	_, err = f.service.Login(context.Background(), "watson@example.com", "anything")
	assert.Equal(t, apperr.CodeWrongCredentials, apperr.CodeOf(err))

	second, err := f.service.LoginWithIdentity(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, f.users.byID, 1)
}

// # Password Recovery

/*
TestForgotPassword verifies token generation, storage, and mail dispatch,
plus the explicit missing-account report.
*/
func TestForgotPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)

	// 1. Malformed login id.
	err = f.service.ForgotPassword(context.Background(), "not-an-email")
	assert.Equal(t, apperr.CodeWrongEmailFormat, apperr.CodeOf(err))

	// 2. Unknown account is reported, not swallowed.
	err = f.service.ForgotPassword(context.Background(), "moriarty@reichenbach.ch")
	assert.Equal(t, apperr.CodeNoAccount, apperr.CodeOf(err))
	assert.Empty(t, f.mailer.sentTo)

	// 3. Known account: token stored and mailed.
	err = f.service.ForgotPassword(context.Background(), "sherlock@221b.baker.str")
	require.NoError(t, err)
	assert.Equal(t, []string{"sherlock@221b.baker.str"}, f.mailer.sentTo)
	assert.NotEmpty(t, f.mailer.lastToken)
	assert.Contains(t, f.resetTokens.byToken, f.mailer.lastToken)
}

/*
TestResetPassword verifies the full recovery round trip and that a used
token is burned.
*/
func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Signup(context.Background(), sherlockInput())
	require.NoError(t, err)
	require.NoError(t, f.service.ForgotPassword(context.Background(), "sherlock@221b.baker.str"))

	resetToken := f.mailer.lastToken

	// 1. Weak replacement password is rejected before the token is consumed.
	err = f.service.ResetPassword(context.Background(), resetToken, "123")
	assert.Equal(t, apperr.CodeBadPasswordFormat, apperr.CodeOf(err))
	assert.Contains(t, f.resetTokens.byToken, resetToken)

	// 2. Valid reset updates the credential.
	err = f.service.ResetPassword(context.Background(), resetToken, "new-password-42")
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), "sherlock@221b.baker.str", "123456")
	assert.Equal(t, apperr.CodeWrongCredentials, apperr.CodeOf(err))

	session, err := f.service.Login(context.Background(), "sherlock@221b.baker.str", "new-password-42")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	// 3. The token is single-use.
	err = f.service.ResetPassword(context.Background(), resetToken, "another-password")
	assert.Equal(t, apperr.CodeWrongToken, apperr.CodeOf(err))
}

/*
TestResetPassword_UnknownToken verifies that an unknown token maps to the
generic WRONG TOKEN response.
*/
func TestResetPassword_UnknownToken(t *testing.T) {
	f := newFixture(t)

	err := f.service.ResetPassword(context.Background(), "never-issued", "long-enough-pass")
	assert.Equal(t, apperr.CodeWrongToken, apperr.CodeOf(err))
}
