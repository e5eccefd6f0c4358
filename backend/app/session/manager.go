package session

import (
	"net/http"
)

type Manager struct{ store Store }

func NewManager(store Store) *Manager { return &Manager{store: store} }

func (m *Manager) Load(r *http.Request) (*Data, error) { return m.store.Load(r) }

// Set marks the session as logged in as userID and issues a fresh session id.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, userID uint) error {
	d := FromContext(r.Context())
	d.UserID = userID
	d.renew = true
	return m.save(w, r, d)
}

// Clear logs the session out. Pending flashes survive.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	d := FromContext(r.Context())
	d.UserID = 0
	return m.save(w, r, d)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	d := FromContext(r.Context())
	d.Flashes = append(d.Flashes, Flash{Category: category, Message: message})
	return m.save(w, r, d)
}

// Flashes returns and removes the pending flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	d := FromContext(r.Context())
	if len(d.Flashes) == 0 {
		return nil, nil
	}
	out := d.Flashes
	d.Flashes = nil
	return out, m.save(w, r, d)
}

func (m *Manager) save(w http.ResponseWriter, r *http.Request, d *Data) error {
	return m.store.Save(w, r, d)
}
