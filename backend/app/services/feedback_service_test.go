package services

import (
	"context"
	"feedback-board/backend/app/db/dbtest"
	"feedback-board/backend/app/models"
	"feedback-board/backend/app/repo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackFixture struct {
	svc        *FeedbackService
	alice, bob *models.User
}

func newFeedbackFixture(t *testing.T, scope FeedScope) feedbackFixture {
	t.Helper()
	gdb := dbtest.New(t)
	users := repo.NewUserRepository(gdb)
	ctx := context.Background()

	a := &models.User{Username: "alice", Email: "alice@example.com", FirstName: "A", LastName: "L", PasswordHash: "x"}
	b := &models.User{Username: "bob", Email: "bob@example.com", FirstName: "B", LastName: "B", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	return feedbackFixture{
		svc:   NewFeedbackService(repo.NewFeedbackRepository(gdb), scope),
		alice: a,
		bob:   b,
	}
}

func TestFeedbackService_Feed(t *testing.T) {
	tests := []struct {
		name  string
		scope FeedScope
		want  []string
	}{
		{name: "all", scope: FeedAll, want: []string{"b1", "a2", "a1"}},
		{name: "default is all", scope: "", want: []string{"b1", "a2", "a1"}},
		{name: "user", scope: FeedUser, want: []string{"a2", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFeedbackFixture(t, tt.scope)
			ctx := context.Background()
			_, err := fx.svc.Post(ctx, fx.alice.ID, "a1", "x")
			require.NoError(t, err)
			_, err = fx.svc.Post(ctx, fx.alice.ID, "a2", "x")
			require.NoError(t, err)
			_, err = fx.svc.Post(ctx, fx.bob.ID, "b1", "x")
			require.NoError(t, err)

			feed, err := fx.svc.Feed(ctx, fx.alice)
			require.NoError(t, err)
			got := make([]string, 0, len(feed))
			for _, f := range feed {
				got = append(got, f.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeedbackService_Post_Validation(t *testing.T) {
	fx := newFeedbackFixture(t, FeedAll)
	_, err := fx.svc.Post(context.Background(), fx.alice.ID, "", "content")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFeedbackService_UpdateOwnership(t *testing.T) {
	fx := newFeedbackFixture(t, FeedAll)
	ctx := context.Background()
	f, err := fx.svc.Post(ctx, fx.alice.ID, "Hi", "Hello")
	require.NoError(t, err)

	_, err = fx.svc.Editable(ctx, fx.bob.ID, f.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	loaded, err := fx.svc.Editable(ctx, fx.alice.ID, f.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, fx.svc.Update(ctx, fx.bob.ID, loaded, "Hacked", ""), models.ErrForbidden)

	got, err := fx.svc.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.Title)

	require.NoError(t, fx.svc.Update(ctx, fx.alice.ID, loaded, "Hello there", ""))
	assert.Equal(t, "Hello there", loaded.Title)
	assert.Equal(t, "Hello", loaded.Content)

	got, err = fx.svc.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", got.Title)

	_, err = fx.svc.Editable(ctx, fx.alice.ID, f.ID+99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

type countingFeedbackStore struct {
	FeedbackStore
	finds int
}

func (s *countingFeedbackStore) FindByID(ctx context.Context, id uint) (*models.Feedback, error) {
	s.finds++
	return s.FeedbackStore.FindByID(ctx, id)
}

func TestFeedbackService_EditLoadsOnce(t *testing.T) {
	fx := newFeedbackFixture(t, FeedAll)
	ctx := context.Background()
	f, err := fx.svc.Post(ctx, fx.alice.ID, "Hi", "Hello")
	require.NoError(t, err)

	store := &countingFeedbackStore{FeedbackStore: fx.svc.feedback}
	svc := NewFeedbackService(store, FeedAll)

	loaded, err := svc.Editable(ctx, fx.alice.ID, f.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, fx.alice.ID, loaded, "", "Changed"))
	assert.Equal(t, 1, store.finds)
}

func TestFeedbackService_DeleteOwnership(t *testing.T) {
	fx := newFeedbackFixture(t, FeedAll)
	ctx := context.Background()
	f, err := fx.svc.Post(ctx, fx.alice.ID, "Hi", "Hello")
	require.NoError(t, err)

	_, err = fx.svc.Delete(ctx, fx.bob.ID, f.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	deleted, err := fx.svc.Delete(ctx, fx.alice.ID, f.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted.User)
	assert.Equal(t, "alice", deleted.User.Username)

	_, err = fx.svc.Get(ctx, f.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestParseFeedScope(t *testing.T) {
	s, err := ParseFeedScope("")
	require.NoError(t, err)
	assert.Equal(t, FeedAll, s)

	s, err = ParseFeedScope("user")
	require.NoError(t, err)
	assert.Equal(t, FeedUser, s)

	_, err = ParseFeedScope("friends")
	assert.Error(t, err)
}
