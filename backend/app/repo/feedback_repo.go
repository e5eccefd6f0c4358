package repo

import (
	"context"
	"feedback-board/backend/app/models"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type FeedbackRepository struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository { return &FeedbackRepository{db: db} }

func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == "" {
		return fmt.Errorf("create feedback: title and content are required: %w", models.ErrValidation)
	}
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) ListAllNewestFirst(ctx context.Context) ([]models.Feedback, error) {
	var out []models.Feedback
	if err := r.db.WithContext(ctx).Preload("User").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}

func (r *FeedbackRepository) ListByUserNewestFirst(ctx context.Context, userID uint) ([]models.Feedback, error) {
	var out []models.Feedback
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list user feedback: %w", err)
	}
	return out, nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var f models.Feedback
	if err := r.db.WithContext(ctx).Preload("User").First(&f, id).Error; err != nil {
		return nil, wrap("find feedback", err)
	}
	return &f, nil
}

// Update replaces title and content only when the new value is non-empty.
func (r *FeedbackRepository) Update(ctx context.Context, f *models.Feedback, title, content string) error {
	if t := strings.TrimSpace(title); t != "" {
		f.Title = t
	}
	if c := strings.TrimSpace(content); c != "" {
		f.Content = c
	}
	err := r.db.WithContext(ctx).Model(&models.Feedback{ID: f.ID}).
		Updates(map[string]interface{}{"title": f.Title, "content": f.Content}).Error
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, f *models.Feedback) error {
	res := r.db.WithContext(ctx).Delete(&models.Feedback{}, f.ID)
	if res.Error != nil {
		return fmt.Errorf("delete feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete feedback: %w", models.ErrNotFound)
	}
	return nil
}
