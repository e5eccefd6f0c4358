package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps a random id in the cookie and the session data in Redis.
type RedisStore struct {
	Client *redis.Client
	Name   string
	TTL    time.Duration
	Secure bool
}

func (s *RedisStore) Load(r *http.Request) (*Data, error) {
	c, err := r.Cookie(s.Name)
	if err != nil || c.Value == "" {
		return &Data{}, nil
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return &Data{}, nil
	}
	raw, err := s.Client.Get(r.Context(), redisKeyPrefix+c.Value).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return &Data{}, nil
	}
	d.id = c.Value
	return &d, nil
}

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, d *Data) error {
	if d.renew {
		if err := s.destroy(r, d); err != nil {
			return err
		}
		d.renew = false
	}
	if d.empty() {
		if err := s.destroy(r, d); err != nil {
			return err
		}
		s.setCookie(w, "", -1)
		return nil
	}
	if d.id == "" {
		d.id = uuid.NewString()
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.Client.Set(r.Context(), redisKeyPrefix+d.id, raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.setCookie(w, d.id, int(s.TTL.Seconds()))
	return nil
}

func (s *RedisStore) destroy(r *http.Request, d *Data) error {
	if d.id == "" {
		return nil
	}
	if err := s.Client.Del(r.Context(), redisKeyPrefix+d.id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	d.id = ""
	return nil
}

func (s *RedisStore) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
