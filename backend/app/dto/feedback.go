package dto

type FeedbackForm struct {
	Title   string `form:"title" validate:"required,max=100"`
	Content string `form:"content" validate:"required"`
}

func (f *FeedbackForm) normalize() {
	f.Title = trim(f.Title)
	f.Content = trim(f.Content)
}

// UpdateFeedbackForm leaves a field unchanged when it is submitted empty.
type UpdateFeedbackForm struct {
	Title   string `form:"title" validate:"omitempty,max=100"`
	Content string `form:"content"`
}

func (f *UpdateFeedbackForm) normalize() {
	f.Title = trim(f.Title)
	f.Content = trim(f.Content)
}
