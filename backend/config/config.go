package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "FEEDBACK"

	DefaultSessionSecret = "dev-secret"
)

type HTTP struct {
	Host               string
	Port               int
	ShutdownTimeoutSec int
}

type DB struct {
	Driver string
	Path   string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	Store      string
	Secret     string
	Issuer     string
	CookieName string
	MaxAgeMin  int
	Secure     bool
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	HTTP     HTTP
	DB       DB
	Redis    Redis
	Session  Session
	Log      Log
	Security struct {
		BcryptCost int
	}
	Feed struct {
		Scope string
	}
}

func newViper(path string) (*viper.Viper, bool, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("app.http.host", "127.0.0.1")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.shutdown_timeout_sec", 10)
	v.SetDefault("app.db.driver", "sqlite")
	v.SetDefault("app.db.path", "feedback.db")
	v.SetDefault("app.db.host", "127.0.0.1")
	v.SetDefault("app.db.port", 3306)
	v.SetDefault("app.db.user", "root")
	v.SetDefault("app.db.pass", "")
	v.SetDefault("app.db.name", "flask_feedback")
	v.SetDefault("app.redis.addr", "127.0.0.1:6379")
	v.SetDefault("app.redis.password", "")
	v.SetDefault("app.redis.db", 0)
	v.SetDefault("app.session.store", "cookie")
	v.SetDefault("app.session.secret", DefaultSessionSecret)
	v.SetDefault("app.session.issuer", "feedback-board")
	v.SetDefault("app.session.cookie_name", "feedback_session")
	v.SetDefault("app.session.max_age_min", 60*24)
	v.SetDefault("app.session.secure", false)
	v.SetDefault("app.log.level", "info")
	v.SetDefault("app.log.format", "console")
	v.SetDefault("app.security.bcrypt_cost", 12)
	v.SetDefault("app.feed.scope", "all")

	if path == "" {
		return v, false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return v, false, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, false, fmt.Errorf("read config: %w", err)
	}
	return v, true, nil
}

// Load reads path on top of the defaults. A missing file is not an error;
// FEEDBACK_* environment variables override both.
func Load(path string) (*Config, error) {
	v, _, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// LoadAndWatch is Load plus a watch on the file: onChange receives every
// reloaded configuration, or the error that made it unusable.
func LoadAndWatch(path string, onChange func(*Config, error)) (*Config, error) {
	v, found, err := newViper(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if found && onChange != nil {
		v.OnConfigChange(func(fsnotify.Event) { onChange(decode(v)) })
		v.WatchConfig()
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTP: HTTP{
			Host:               v.GetString("app.http.host"),
			Port:               v.GetInt("app.http.port"),
			ShutdownTimeoutSec: v.GetInt("app.http.shutdown_timeout_sec"),
		},
		DB: DB{
			Driver: strings.ToLower(v.GetString("app.db.driver")),
			Path:   v.GetString("app.db.path"),
			Host:   v.GetString("app.db.host"),
			Port:   v.GetInt("app.db.port"),
			User:   v.GetString("app.db.user"),
			Pass:   v.GetString("app.db.pass"),
			Name:   v.GetString("app.db.name"),
		},
		Redis: Redis{
			Addr:     v.GetString("app.redis.addr"),
			Password: v.GetString("app.redis.password"),
			DB:       v.GetInt("app.redis.db"),
		},
		Session: Session{
			Store:      strings.ToLower(v.GetString("app.session.store")),
			Secret:     v.GetString("app.session.secret"),
			Issuer:     v.GetString("app.session.issuer"),
			CookieName: v.GetString("app.session.cookie_name"),
			MaxAgeMin:  v.GetInt("app.session.max_age_min"),
			Secure:     v.GetBool("app.session.secure"),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString("app.log.level")),
			Format: strings.ToLower(v.GetString("app.log.format")),
		},
	}
	cfg.Security.BcryptCost = v.GetInt("app.security.bcrypt_cost")
	cfg.Feed.Scope = strings.ToLower(v.GetString("app.feed.scope"))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.http.port: %d out of range", c.HTTP.Port))
	}
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Errorf("app.db.driver: unsupported %q", c.DB.Driver))
	}
	switch c.Session.Store {
	case "cookie", "redis":
	default:
		errs = append(errs, fmt.Errorf("app.session.store: unsupported %q", c.Session.Store))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("app.session.secret: must not be empty"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("app.session.cookie_name: must not be empty"))
	}
	if c.Session.MaxAgeMin <= 0 {
		errs = append(errs, fmt.Errorf("app.session.max_age_min: %d must be positive", c.Session.MaxAgeMin))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("app.log.level: %w", err))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("app.log.format: unsupported %q", c.Log.Format))
	}
	switch c.Feed.Scope {
	case "all", "user":
	default:
		errs = append(errs, fmt.Errorf("app.feed.scope: unsupported %q", c.Feed.Scope))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
