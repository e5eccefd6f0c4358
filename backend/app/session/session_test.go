package session

import (
	jwtutil "feedback-board/backend/app/jwt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "feedback_session"

func newCookieStore() *CookieStore {
	return &CookieStore{
		Signer: &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "test", ExpMin: 60},
		Name:   cookieName,
		MaxAge: time.Hour,
	}
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &RedisStore{Client: client, Name: cookieName, TTL: time.Hour}, mr
}

// lastCookie returns the cookie a browser would keep after the response.
func lastCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			found = c
		}
	}
	require.NotNil(t, found, "no session cookie set")
	return found
}

// step runs fn against a request carrying cookie and loads the session first,
// the way the session middleware does.
func step(t *testing.T, m *Manager, cookie *http.Cookie, fn func(w http.ResponseWriter, r *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	d, err := m.Load(r)
	require.NoError(t, err)
	r = r.WithContext(WithData(r.Context(), d))
	rec := httptest.NewRecorder()
	fn(rec, r)
	return rec
}

func stores(t *testing.T) map[string]Store {
	rs, _ := newRedisStore(t)
	return map[string]Store{"cookie": newCookieStore(), "redis": rs}
}

func TestManager_LoginFlashLogout(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			m := NewManager(store)

			rec := step(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
				_, ok := CurrentUserID(r.Context())
				assert.False(t, ok)
				require.NoError(t, m.Set(w, r, 42))
				require.NoError(t, m.AddFlash(w, r, CategoryPrimary, "Welcome Back, alice!"))
			})
			cookie := lastCookie(t, rec)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

			rec = step(t, m, cookie, func(w http.ResponseWriter, r *http.Request) {
				id, ok := CurrentUserID(r.Context())
				assert.True(t, ok)
				assert.Equal(t, uint(42), id)

				flashes, err := m.Flashes(w, r)
				require.NoError(t, err)
				assert.Equal(t, []Flash{{Category: CategoryPrimary, Message: "Welcome Back, alice!"}}, flashes)
			})
			cookie = lastCookie(t, rec)

			rec = step(t, m, cookie, func(w http.ResponseWriter, r *http.Request) {
				flashes, err := m.Flashes(w, r)
				require.NoError(t, err)
				assert.Empty(t, flashes)

				require.NoError(t, m.Clear(w, r))
				require.NoError(t, m.AddFlash(w, r, CategoryInfo, "Goodbye!"))
			})
			cookie = lastCookie(t, rec)

			step(t, m, cookie, func(w http.ResponseWriter, r *http.Request) {
				_, ok := CurrentUserID(r.Context())
				assert.False(t, ok)
				flashes, err := m.Flashes(w, r)
				require.NoError(t, err)
				assert.Equal(t, []Flash{{Category: CategoryInfo, Message: "Goodbye!"}}, flashes)
			})
		})
	}
}

func TestCookieStore_InvalidCookieIsAnonymous(t *testing.T) {
	store := newCookieStore()
	forger := &CookieStore{
		Signer: &jwtutil.Signer{Secret: []byte("attacker"), Issuer: "test", ExpMin: 60},
		Name:   cookieName,
	}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, forger.Save(rec, r, &Data{UserID: 1}))

	for _, value := range []string{lastCookie(t, rec).Value, "garbage", ""} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: value})
		d, err := store.Load(r)
		require.NoError(t, err)
		assert.Zero(t, d.UserID)
	}
}

func TestCookieStore_EmptySessionExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, newCookieStore().Save(rec, r, &Data{}))
	assert.Less(t, lastCookie(t, rec).MaxAge, 0)
}

func TestRedisStore_RenewsIDOnLogin(t *testing.T) {
	store, mr := newRedisStore(t)
	m := NewManager(store)

	rec := step(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.AddFlash(w, r, CategoryDanger, "Please login first!"))
	})
	anon := lastCookie(t, rec)
	assert.True(t, mr.Exists(redisKeyPrefix+anon.Value))

	rec = step(t, m, anon, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.Set(w, r, 7))
	})
	authed := lastCookie(t, rec)
	assert.NotEqual(t, anon.Value, authed.Value)
	assert.False(t, mr.Exists(redisKeyPrefix+anon.Value))
	assert.True(t, mr.Exists(redisKeyPrefix+authed.Value))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+authed.Value))

	step(t, m, authed, func(w http.ResponseWriter, r *http.Request) {
		id, ok := CurrentUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
		// the flash from before login is carried over
		flashes, err := m.Flashes(w, r)
		require.NoError(t, err)
		assert.Len(t, flashes, 1)
	})
}

func TestRedisStore_ExpiredOrUnknownID(t *testing.T) {
	store, mr := newRedisStore(t)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, store.Save(rec, r, &Data{UserID: 3}))
	cookie := lastCookie(t, rec)

	mr.FastForward(2 * time.Hour)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	d, err := store.Load(r)
	require.NoError(t, err)
	assert.Zero(t, d.UserID)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-uuid"})
	d, err = store.Load(r)
	require.NoError(t, err)
	assert.Zero(t, d.UserID)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := newRedisStore(t)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, store.Save(rec, r, &Data{UserID: 3}))
	cookie := lastCookie(t, rec)

	mr.Close()

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	_, err := store.Load(r)
	assert.Error(t, err)
}

func TestFromContext_NeverNil(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotNil(t, FromContext(r.Context()))
	_, ok := CurrentUserID(r.Context())
	assert.False(t, ok)
}
