// Copyright (c) 2026 Vicinio. All rights reserved.

package post_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/sec"
	"github.com/vicinio/vicinio/internal/post"
	"github.com/vicinio/vicinio/pkg/pagination"
)

const (
	authorID      = "0191c2a8-3b5e-7000-8000-4f2d90aa1111"
	strangerID    = "0191c2a8-3b5e-7000-8000-4f2d90aa2222"
	bakerStreetID = "0191c2a8-3b5e-7000-8000-4f2d90aa0001"
	maryleboneID  = "0191c2a8-3b5e-7000-8000-4f2d90aa0002"
	visiblePostID = "0191c2a8-3b5e-7000-8000-4f2d90bb0001"
	hiddenPostID  = "0191c2a8-3b5e-7000-8000-4f2d90bb0002"
	missingPostID = "0191c2a8-3b5e-7000-8000-4f2d90bb0099"
)

// # In-Memory Fake

type fakePostRepo struct {
	byID     map[string]*post.Post
	comments map[string][]post.Comment
	likes    map[string][]post.Like
}

func (r *fakePostRepo) FindByID(_ context.Context, id string) (*post.Post, error) {
	if p, ok := r.byID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, post.ErrNotFound
}

func (r *fakePostRepo) ListVisibleByCommunity(_ context.Context, communityID string, limit, offset int) ([]*post.Post, error) {
	matches := make([]*post.Post, 0)
	for _, p := range r.byID {
		if p.Community == communityID && p.IsVisible() {
			matches = append(matches, p)
		}
	}
	if offset >= len(matches) {
		return []*post.Post{}, nil
	}
	matches = matches[offset:]
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *fakePostRepo) Create(_ context.Context, p *post.Post) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePostRepo) ListComments(_ context.Context, postID string) ([]post.Comment, error) {
	if c, ok := r.comments[postID]; ok {
		return c, nil
	}
	return []post.Comment{}, nil
}

func (r *fakePostRepo) ListLikes(_ context.Context, postID string) ([]post.Like, error) {
	if l, ok := r.likes[postID]; ok {
		return l, nil
	}
	return []post.Like{}, nil
}

// # Fixture

func newRepo() *fakePostRepo {
	return &fakePostRepo{
		byID: map[string]*post.Post{
			visiblePostID: {
				ID:          visiblePostID,
				Description: "Lost cat near Regent's Park, answers to Toby",
				Images:      []string{},
				PostedBy:    authorID,
				PostedDate:  time.Now().Add(-time.Hour),
				Status:      post.StatusVisible,
				Community:   bakerStreetID,
			},
			hiddenPostID: {
				ID:          hiddenPostID,
				Description: "Retracted notice",
				Images:      []string{},
				PostedBy:    authorID,
				PostedDate:  time.Now().Add(-2 * time.Hour),
				Status:      0,
				Community:   bakerStreetID,
			},
		},
		comments: map[string][]post.Comment{
			visiblePostID: {{Comment: "Seen him by the canal", CommentDate: time.Now(), CommentedBy: strangerID}},
		},
		likes: map[string][]post.Like{
			visiblePostID: {{LikedByName: "John Watson", LikedBy: strangerID}},
		},
	}
}

// memberPayload builds a token snapshot for a Baker Street member whose
// current community is Baker Street.
func memberPayload(userID string) *sec.TokenPayload {
	return &sec.TokenPayload{User: sec.TokenUser{
		ID:               userID,
		FirstName:        "Sherlock",
		LastName:         "Holmes",
		Status:           1,
		Communities:      []string{bakerStreetID, maryleboneID},
		CurrentCommunity: bakerStreetID,
	}}
}

func defaultPage() pagination.Params {
	return pagination.Params{Page: 1, Limit: 20}
}

// # Gate Sequence

/*
TestGet_GateSequence verifies the fixed gate order and its one-code-per-gate
mapping for single-post reads.
*/
func TestGet_GateSequence(t *testing.T) {
	service := post.NewService(newRepo())

	outsider := memberPayload(authorID)
	outsider.User.Communities = []string{maryleboneID}
	outsider.User.CurrentCommunity = maryleboneID

	drifted := memberPayload(authorID)
	drifted.User.CurrentCommunity = maryleboneID

	tests := []struct {
		name        string
		payload     *sec.TokenPayload
		communityID string
		postID      string
		wantCode    int
	}{
		{"malformed_community_id", memberPayload(authorID), "nope", visiblePostID, apperr.CodeInvalidCommunityID},
		{"not_a_member", outsider, bakerStreetID, visiblePostID, apperr.CodeUserNotJoinedCommunity},
		{"not_current_community", drifted, bakerStreetID, visiblePostID, apperr.CodeNotCurrentCommunity},
		{"malformed_post_id", memberPayload(authorID), bakerStreetID, "42", apperr.CodeInvalidPostID},
		{"unknown_post", memberPayload(authorID), bakerStreetID, missingPostID, apperr.CodePostDoesNotExist},
		{"hidden_post", memberPayload(authorID), bakerStreetID, hiddenPostID, apperr.CodePostCannotBeViewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := service.Get(context.Background(), tt.payload, tt.communityID, tt.postID)

			assert.Nil(t, found)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
		})
	}
}

/*
TestGet verifies the happy path returns the hydrated post.
*/
func TestGet(t *testing.T) {
	service := post.NewService(newRepo())

	found, err := service.Get(context.Background(), memberPayload(strangerID), bakerStreetID, visiblePostID)
	require.NoError(t, err)
	assert.Equal(t, visiblePostID, found.ID)
	assert.Equal(t, authorID, found.PostedBy)
}

// # List

/*
TestList verifies that listing applies the community gates and filters out
hidden posts.
*/
func TestList(t *testing.T) {
	service := post.NewService(newRepo())

	posts, err := service.List(context.Background(), memberPayload(authorID), bakerStreetID, defaultPage())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visiblePostID, posts[0].ID)

	// Drifted current community blocks the list entirely.
	drifted := memberPayload(authorID)
	drifted.User.CurrentCommunity = maryleboneID
	_, err = service.List(context.Background(), drifted, bakerStreetID, defaultPage())
	assert.Equal(t, apperr.CodeNotCurrentCommunity, apperr.CodeOf(err))
}

// # Comments & Likes

/*
TestCommentsAndLikes verifies that the sub-resource reads run the full gate
sequence before returning their collections.
*/
func TestCommentsAndLikes(t *testing.T) {
	service := post.NewService(newRepo())
	payload := memberPayload(strangerID)

	comments, err := service.Comments(context.Background(), payload, bakerStreetID, visiblePostID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Seen him by the canal", comments[0].Comment)

	likes, err := service.Likes(context.Background(), payload, bakerStreetID, visiblePostID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "John Watson", likes[0].LikedByName)

	// A hidden post hides its sub-resources too.
	_, err = service.Comments(context.Background(), payload, bakerStreetID, hiddenPostID)
	assert.Equal(t, apperr.CodePostCannotBeViewed, apperr.CodeOf(err))

	_, err = service.Likes(context.Background(), payload, bakerStreetID, hiddenPostID)
	assert.Equal(t, apperr.CodePostCannotBeViewed, apperr.CodeOf(err))
}

// # Create

/*
TestCreate verifies a valid publish: the post comes back visible, owned by
the caller, and stamped into the current community.
*/
func TestCreate(t *testing.T) {
	repo := newRepo()
	service := post.NewService(repo)

	created, err := service.Create(context.Background(), memberPayload(authorID), bakerStreetID, post.CreateInput{
		Description: "Violin practice tonight, apologies in advance",
		Images:      nil,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, post.StatusVisible, created.Status)
	assert.Equal(t, authorID, created.PostedBy)
	assert.Equal(t, bakerStreetID, created.Community)
	assert.NotNil(t, created.Images)

	// Persisted, not just echoed.
	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Description, stored.Description)
}

/*
TestCreate_EmptyDescription verifies the description check fires right
after the community id format check, before any membership gate.
*/
func TestCreate_EmptyDescription(t *testing.T) {
	service := post.NewService(newRepo())

	// Even a caller outside the community gets the description error first.
	outsider := memberPayload(authorID)
	outsider.User.Communities = []string{maryleboneID}
	outsider.User.CurrentCommunity = maryleboneID

	_, err := service.Create(context.Background(), outsider, bakerStreetID, post.CreateInput{Description: "   "})
	assert.Equal(t, apperr.CodePostDescriptionIsRequired, apperr.CodeOf(err))
}

/*
TestCreate_Gates verifies the membership and current-community gates for
well-formed publishes.
*/
func TestCreate_Gates(t *testing.T) {
	service := post.NewService(newRepo())

	outsider := memberPayload(authorID)
	outsider.User.Communities = []string{maryleboneID}
	outsider.User.CurrentCommunity = maryleboneID

	drifted := memberPayload(authorID)
	drifted.User.CurrentCommunity = maryleboneID

	input := post.CreateInput{Description: "Hello Baker Street"}

	_, err := service.Create(context.Background(), outsider, bakerStreetID, input)
	assert.Equal(t, apperr.CodeUserNotJoinedCommunity, apperr.CodeOf(err))

	_, err = service.Create(context.Background(), drifted, bakerStreetID, input)
	assert.Equal(t, apperr.CodeNotCurrentCommunity, apperr.CodeOf(err))

	_, err = service.Create(context.Background(), memberPayload(authorID), "bogus", input)
	assert.Equal(t, apperr.CodeInvalidCommunityID, apperr.CodeOf(err))
}

// # Update

/*
TestUpdate verifies owner-only mutation with nil fields left untouched.
*/
func TestUpdate(t *testing.T) {
	repo := newRepo()
	service := post.NewService(repo)

	newDescription := "Found: the cat came home on his own"
	updated, err := service.Update(context.Background(), memberPayload(authorID), bakerStreetID, visiblePostID, post.UpdateInput{
		Description: &newDescription,
	})
	require.NoError(t, err)

	assert.Equal(t, newDescription, updated.Description)
	assert.Equal(t, post.StatusVisible, updated.Status) // untouched

	// Status-only update (soft hide).
	hidden := 0
	updated, err = service.Update(context.Background(), memberPayload(authorID), bakerStreetID, visiblePostID, post.UpdateInput{
		Status: &hidden,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Status)
	assert.Equal(t, newDescription, updated.Description)
}

/*
TestUpdate_OwnerOnly verifies that a member who is not the author is
rejected with the owner gate after the read gates pass.
*/
func TestUpdate_OwnerOnly(t *testing.T) {
	service := post.NewService(newRepo())

	newDescription := "hijacked"
	updated, err := service.Update(context.Background(), memberPayload(strangerID), bakerStreetID, visiblePostID, post.UpdateInput{
		Description: &newDescription,
	})

	assert.Nil(t, updated)
	assert.Equal(t, apperr.CodePostOwnerUpdateOnly, apperr.CodeOf(err))
}
