package services

import (
	"context"
	"feedback-board/backend/app/models"
	"fmt"
)

type FeedbackStore interface {
	Create(ctx context.Context, f *models.Feedback) error
	ListAllNewestFirst(ctx context.Context) ([]models.Feedback, error)
	ListByUserNewestFirst(ctx context.Context, userID uint) ([]models.Feedback, error)
	FindByID(ctx context.Context, id uint) (*models.Feedback, error)
	Update(ctx context.Context, f *models.Feedback, title, content string) error
	Delete(ctx context.Context, f *models.Feedback) error
}

// FeedScope selects what a profile page lists.
type FeedScope string

const (
	FeedAll  FeedScope = "all"
	FeedUser FeedScope = "user"
)

func ParseFeedScope(s string) (FeedScope, error) {
	switch FeedScope(s) {
	case "", FeedAll:
		return FeedAll, nil
	case FeedUser:
		return FeedUser, nil
	}
	return "", fmt.Errorf("unknown feed scope %q", s)
}

type FeedbackService struct {
	feedback FeedbackStore
	scope    FeedScope
}

func NewFeedbackService(feedback FeedbackStore, scope FeedScope) *FeedbackService {
	if scope == "" {
		scope = FeedAll
	}
	return &FeedbackService{feedback: feedback, scope: scope}
}

func (s *FeedbackService) Post(ctx context.Context, ownerID uint, title, content string) (*models.Feedback, error) {
	f := &models.Feedback{Title: title, Content: content, UserID: ownerID}
	if err := s.feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Feed returns the feedback shown on profile, newest first.
func (s *FeedbackService) Feed(ctx context.Context, profile *models.User) ([]models.Feedback, error) {
	if s.scope == FeedUser {
		return s.feedback.ListByUserNewestFirst(ctx, profile.ID)
	}
	return s.feedback.ListAllNewestFirst(ctx)
}

func (s *FeedbackService) Get(ctx context.Context, id uint) (*models.Feedback, error) {
	return s.feedback.FindByID(ctx, id)
}

// Editable loads feedback id for its owner actorID.
func (s *FeedbackService) Editable(ctx context.Context, actorID, id uint) (*models.Feedback, error) {
	f, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(actorID, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Update applies title and content to f as loaded by Editable.
func (s *FeedbackService) Update(ctx context.Context, actorID uint, f *models.Feedback, title, content string) error {
	if err := checkOwner(actorID, f); err != nil {
		return err
	}
	return s.feedback.Update(ctx, f, title, content)
}

func (s *FeedbackService) Delete(ctx context.Context, actorID, id uint) (*models.Feedback, error) {
	f, err := s.Editable(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.feedback.Delete(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func checkOwner(actorID uint, f *models.Feedback) error {
	if f.UserID != actorID {
		return fmt.Errorf("feedback %d: %w", f.ID, models.ErrForbidden)
	}
	return nil
}
