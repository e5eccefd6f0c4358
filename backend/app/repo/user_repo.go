package repo

import (
	"context"
	"errors"
	"feedback-board/backend/app/models"
	"fmt"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Create relies on the unique indexes on the lowercased username and on
// email; a violation comes back as models.ErrDuplicateUsernameOrEmail.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user: %w", models.ErrDuplicateUsernameOrEmail)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("username_key = ?", models.UsernameKey(username)).First(&u).Error
	if err != nil {
		return nil, wrap("find user by username", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, wrap("find user by id", err)
	}
	return &u, nil
}

// Delete removes the user and every feedback they own in one transaction.
func (r *UserRepository) Delete(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.Feedback{}).Error; err != nil {
			return fmt.Errorf("delete user feedback: %w", err)
		}
		res := tx.Delete(&models.User{}, u.ID)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete user: %w", models.ErrNotFound)
		}
		return nil
	})
}

func wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
