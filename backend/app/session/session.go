// Package session keeps the per-browser state of the board: who is logged
// in and the flash messages waiting to be shown on the next page.
package session

import (
	"context"
	"net/http"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

const (
	CategorySuccess = "success"
	CategoryPrimary = "primary"
	CategoryInfo    = "info"
	CategoryDanger  = "danger"
	CategoryWarning = "warning"
)

type Data struct {
	UserID  uint    `json:"uid,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`

	id    string
	renew bool
}

func (d *Data) empty() bool { return d.UserID == 0 && len(d.Flashes) == 0 }

// Store persists Data between requests.
type Store interface {
	Load(r *http.Request) (*Data, error)
	Save(w http.ResponseWriter, r *http.Request, d *Data) error
}

type ctxKey int

const dataKey ctxKey = 1

func WithData(ctx context.Context, d *Data) context.Context {
	return context.WithValue(ctx, dataKey, d)
}

// FromContext never returns nil; a request without loaded session data is
// anonymous.
func FromContext(ctx context.Context) *Data {
	if d, ok := ctx.Value(dataKey).(*Data); ok && d != nil {
		return d
	}
	return &Data{}
}

func CurrentUserID(ctx context.Context) (uint, bool) {
	d := FromContext(ctx)
	return d.UserID, d.UserID != 0
}
