package services

import (
	"context"
	"errors"
	"feedback-board/backend/app/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct {
	users   map[uint]*models.User
	nextID  uint
	findErr error
	deleted []uint
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[uint]*models.User{}, nextID: 1}
}

func (m *mockUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, u.Username) || existing.Email == u.Email {
			return models.ErrDuplicateUsernameOrEmail
		}
	}
	u.ID = m.nextID
	m.nextID++
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserStore) Delete(_ context.Context, u *models.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return models.ErrNotFound
	}
	delete(m.users, u.ID)
	m.deleted = append(m.deleted, u.ID)
	return nil
}

func newTestUserService() (*UserService, *mockUserStore) {
	store := newMockUserStore()
	return NewUserService(store, NewCredentialStore(bcrypt.MinCost)), store
}

var alice = Registration{
	FirstName: "Alice",
	LastName:  "Liddell",
	Email:     "alice@example.com",
	Username:  "alice",
	Password:  "wonderland",
}

func TestUserService_Register(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, alice)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Alice Liddell", u.FullName())

	stored := store.users[u.ID]
	assert.NotEqual(t, alice.Password, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, alice.Password)
}

func TestUserService_Register_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Registration)
		wantErr error
	}{
		{name: "duplicate username", mutate: func(r *Registration) { r.Email = "other@example.com" }, wantErr: models.ErrDuplicateUsernameOrEmail},
		{name: "duplicate email", mutate: func(r *Registration) { r.Username = "bob" }, wantErr: models.ErrDuplicateUsernameOrEmail},
		{name: "empty password", mutate: func(r *Registration) { r.Username, r.Email, r.Password = "carol", "carol@example.com", "" }, wantErr: models.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestUserService()
			ctx := context.Background()
			_, err := svc.Register(ctx, alice)
			require.NoError(t, err)

			reg := alice
			tt.mutate(&reg)
			_, err = svc.Register(ctx, reg)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, store.users, 1)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "alice", password: "wonderland"},
		{name: "username case differs", username: "ALICE", password: "wonderland"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: models.ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "wonderland", wantErr: models.ErrInvalidCredentials},
		{name: "empty password", username: "alice", password: "", wantErr: models.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, u.ID)
			assert.Equal(t, "alice", u.Username)
		})
	}
}

func TestUserService_Authenticate_StoreFailure(t *testing.T) {
	svc, store := newTestUserService()
	boom := errors.New("connection reset")
	store.findErr = boom

	_, err := svc.Authenticate(context.Background(), "alice", "wonderland")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserService_Delete(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()
	a, err := svc.Register(ctx, alice)
	require.NoError(t, err)
	b, err := svc.Register(ctx, Registration{FirstName: "Bob", LastName: "B", Email: "bob@example.com", Username: "bob", Password: "pw"})
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID, "alice")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, store.deleted)

	err = svc.Delete(ctx, a.ID, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, a.ID, "alice"))
	assert.Equal(t, []uint{a.ID}, store.deleted)
}
