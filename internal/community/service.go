// Copyright (c) 2026 Vicinio. All rights reserved.

package community

import (
	"context"
	"errors"
	"fmt"

	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/sec"
	"github.com/vicinio/vicinio/internal/platform/validate"
	"github.com/vicinio/vicinio/internal/user"
)

// # Contracts & Types

// TokenIssuer defines the contract for re-issuing bearer tokens after a
// membership mutation.
type TokenIssuer interface {
	// Issue signs the payload into a compact bearer token string.
	Issue(payload sec.TokenPayload) (string, error)
}

// Service implements the community membership protocol.
//
// # State Machine
//
// Per user: NoCommunity → HasCommunities(set, current ∈ set). Join grows the
// set and moves current; Switch moves current within the set. Both re-issue
// the bearer token so the embedded snapshot matches the persisted state at
// response time.
type Service struct {
	communityRepository  Repository
	membershipRepository MembershipRepository
	userRepository       user.Repository
	tokenIssuer          TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	communityRepo Repository,
	membershipRepo MembershipRepository,
	userRepo user.Repository,
	issuer TokenIssuer,
) *Service {
	return &Service{
		communityRepository:  communityRepo,
		membershipRepository: membershipRepo,
		userRepository:       userRepo,
		tokenIssuer:          issuer,
	}
}

// MembershipResult is the outcome of a membership mutation: the reloaded
// user, their live community list, and the freshly issued token.
type MembershipResult struct {
	User        *user.User
	Communities []*Community
	Token       string
}

// # Membership Protocol

/*
Join adds the caller to a community and makes it their current one.

Description: Validates the target, inserts the membership with
insert-if-absent semantics (re-joining is an idempotent no-op), points
current_community at the joined community, reloads the user with their live
membership set, and issues a fresh token. Success is never returned with a
stale token.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload (the caller's decoded token)
  - communityID: string

Returns:
  - *MembershipResult: Reloaded user, live communities, fresh token
  - error: 1401, 1402, or storage failures
*/
func (service *Service) Join(context context.Context, payload *sec.TokenPayload, communityID string) (*MembershipResult, error) {

	// ── 1. Validate the target id before touching storage ────────────────
	if !validate.IsID(communityID) {
		return nil, apperr.InvalidCommunityID()
	}

	// ── 2. The community must exist ──────────────────────────────────────
	if _, err := service.communityRepository.FindByID(context, communityID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.CommunityDoesNotExist()
		}
		return nil, fmt.Errorf("community_service_join_lookup_failed: %w", err)
	}

	// ── 3. Atomic insert-if-absent membership write ──────────────────────
	if err := service.membershipRepository.Add(context, payload.User.ID, communityID); err != nil {
		return nil, fmt.Errorf("community_service_join_add_failed: %w", err)
	}

	// ── 4. Joining also moves the caller into the community ──────────────
	if err := service.userRepository.SetCurrentCommunity(context, payload.User.ID, communityID); err != nil {
		return nil, fmt.Errorf("community_service_join_set_current_failed: %w", err)
	}

	return service.reloadAndIssue(context, payload.User.ID)
}

/*
Switch moves the caller's current community within their membership set.

Description: Membership is checked AGAINST THE TOKEN, not a fresh store
read — this is the fast-path authorization the embedded snapshot exists
for. On success the new current community is persisted and a fresh token
issued.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string

Returns:
  - *MembershipResult: Reloaded user, live communities, fresh token
  - error: 1401, 1405, or storage failures
*/
func (service *Service) Switch(context context.Context, payload *sec.TokenPayload, communityID string) (*MembershipResult, error) {

	// ── 1. Validate the target id ────────────────────────────────────────
	if !validate.IsID(communityID) {
		return nil, apperr.InvalidCommunityID()
	}

	// ── 2. Membership gate, read from the token snapshot ─────────────────
	if !payload.IsMemberOf(communityID) {
		return nil, apperr.UserNotJoinedCommunity()
	}

	// ── 3. Persist the move ──────────────────────────────────────────────
	if err := service.userRepository.SetCurrentCommunity(context, payload.User.ID, communityID); err != nil {
		return nil, fmt.Errorf("community_service_switch_set_current_failed: %w", err)
	}

	return service.reloadAndIssue(context, payload.User.ID)
}

/*
ListMine returns the caller's live community list.

Description: This path deliberately hits storage instead of trusting the
token — membership sets grow and the token may carry a trimmed snapshot.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload

Returns:
  - []*Community: Hydrated entities, empty if none
  - error: Retrieval errors
*/
func (service *Service) ListMine(context context.Context, payload *sec.TokenPayload) ([]*Community, error) {
	communities, err := service.membershipRepository.ListForUser(context, payload.User.ID)
	if err != nil {
		return nil, fmt.Errorf("community_service_list_mine_failed: %w", err)
	}
	return communities, nil
}

/*
Current resolves the caller's current community from the token.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload

Returns:
  - *Community: Hydrated entity
  - error: 1404 (no current community yet), 1401, 1402, or storage failures
*/
func (service *Service) Current(context context.Context, payload *sec.TokenPayload) (*Community, error) {
	currentID, ok := payload.CurrentCommunityID()
	if !ok {
		return nil, apperr.NoCommunityYet()
	}

	// An embedded id that is not well-formed means the token was issued
	// from corrupt state; surface it as a format failure, not a lookup miss.
	if !validate.IsID(currentID) {
		return nil, apperr.InvalidCommunityID()
	}

	community, err := service.communityRepository.FindByID(context, currentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.CommunityDoesNotExist()
		}
		return nil, fmt.Errorf("community_service_current_lookup_failed: %w", err)
	}

	return community, nil
}

/*
Get returns community metadata by id. No membership check: any
authenticated caller may fetch any community.

Parameters:
  - context: context.Context
  - communityID: string

Returns:
  - *Community: Hydrated entity
  - error: 1401, 1402, or storage failures
*/
func (service *Service) Get(context context.Context, communityID string) (*Community, error) {
	if !validate.IsID(communityID) {
		return nil, apperr.InvalidCommunityID()
	}

	community, err := service.communityRepository.FindByID(context, communityID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.CommunityDoesNotExist()
		}
		return nil, fmt.Errorf("community_service_get_lookup_failed: %w", err)
	}

	return community, nil
}

// reloadAndIssue re-reads the user and their live membership, then issues a
// token from the canonical projection. Every mutation path funnels through
// here so no two issuance sites can drift in embedded shape.
func (service *Service) reloadAndIssue(context context.Context, userID string) (*MembershipResult, error) {
	account, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("community_service_reload_user_failed: %w", err)
	}

	communities, err := service.membershipRepository.ListForUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("community_service_reload_memberships_failed: %w", err)
	}

	communityIDs := make([]string, 0, len(communities))
	for _, community := range communities {
		communityIDs = append(communityIDs, community.ID)
	}

	token, err := service.tokenIssuer.Issue(sec.TokenPayload{User: user.TokenView(account, communityIDs)})
	if err != nil {
		return nil, fmt.Errorf("community_service_issue_token_failed: %w", err)
	}

	return &MembershipResult{
		User:        account,
		Communities: communities,
		Token:       token,
	}, nil
}
