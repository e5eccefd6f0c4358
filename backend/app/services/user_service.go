package services

import (
	"context"
	"errors"
	"feedback-board/backend/app/models"
	"fmt"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Delete(ctx context.Context, u *models.User) error
}

type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

type UserService struct {
	users UserStore
	creds *CredentialStore
}

func NewUserService(users UserStore, creds *CredentialStore) *UserService {
	return &UserService{users: users, creds: creds}
}

func (s *UserService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	hash, err := s.creds.Hash(reg.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate does not tell an unknown username apart from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.creds.Verify(u.PasswordHash, password) {
		return nil, models.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Delete removes username's account together with its feedback. Only the
// account owner may do so.
func (s *UserService) Delete(ctx context.Context, actorID uint, username string) error {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u.ID != actorID {
		return fmt.Errorf("delete user %s: %w", u.Username, models.ErrForbidden)
	}
	return s.users.Delete(ctx, u)
}
