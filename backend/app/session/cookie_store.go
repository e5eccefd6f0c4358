package session

import (
	jwtutil "feedback-board/backend/app/jwt"
	"fmt"
	"net/http"
	"time"
)

// CookieStore keeps the whole session in a signed JWT cookie.
type CookieStore struct {
	Signer *jwtutil.Signer
	Name   string
	MaxAge time.Duration
	Secure bool
}

func (s *CookieStore) Load(r *http.Request) (*Data, error) {
	c, err := r.Cookie(s.Name)
	if err != nil {
		return &Data{}, nil
	}
	var d Data
	if err := s.Signer.Decode(c.Value, &d); err != nil {
		// expired or forged cookies start over as anonymous
		return &Data{}, nil
	}
	return &d, nil
}

func (s *CookieStore) Save(w http.ResponseWriter, _ *http.Request, d *Data) error {
	if d.empty() {
		http.SetCookie(w, s.cookie("", -1))
		return nil
	}
	token, err := s.Signer.Sign(d)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	http.SetCookie(w, s.cookie(token, int(s.MaxAge.Seconds())))
	return nil
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
