// internal/config/config.go
//
// Process configuration. A local .env file is loaded first (development),
// then every key can be overridden by the environment.
//
//   PORT              HTTP port (5175)
//   LOG_LEVEL         zerolog level (info)
//   CLIENT_ORIGIN     CORS origin (http://localhost:5173)
//   JWT_SECRET        guest token signing key
//   JWT_EXPIRES_DAYS  guest token lifetime (14)
//   COOKIE_NAME       guest token cookie (wordgrid_token)
//   DAILY_SALT        daily board seed salt
//   ROUND_SECONDS     round length in ticks (30)
//   TICK_INTERVAL     real-time tick length (1s)
//   WORDS_FILE        dictionary file; empty uses the embedded list
//   PRODUCTION        secure cookies when true
//   DEFAULT_PLAYER    leaderboard name for unnamed rounds (Anonymous)
//   SESSION_TTL       how long finished, unwatched sessions are kept (10m)

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	LogLevel       string
	ClientOrigin   string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	DailySalt      string
	RoundSeconds   int
	TickInterval   time.Duration
	WordsFile      string
	Production     bool
	DefaultPlayer  string
	SessionTTL     time.Duration
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "5175")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("JWT_SECRET", "dev_secret_change_me")
	v.SetDefault("JWT_EXPIRES_DAYS", 14)
	v.SetDefault("COOKIE_NAME", "wordgrid_token")
	v.SetDefault("DAILY_SALT", "local_dev_salt")
	v.SetDefault("ROUND_SECONDS", 30)
	v.SetDefault("TICK_INTERVAL", time.Second)
	v.SetDefault("WORDS_FILE", "")
	v.SetDefault("PRODUCTION", false)
	v.SetDefault("DEFAULT_PLAYER", "Anonymous")
	v.SetDefault("SESSION_TTL", 10*time.Minute)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ClientOrigin:   v.GetString("CLIENT_ORIGIN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiresDays: v.GetInt("JWT_EXPIRES_DAYS"),
		CookieName:     v.GetString("COOKIE_NAME"),
		DailySalt:      v.GetString("DAILY_SALT"),
		RoundSeconds:   v.GetInt("ROUND_SECONDS"),
		TickInterval:   v.GetDuration("TICK_INTERVAL"),
		WordsFile:      v.GetString("WORDS_FILE"),
		Production:     v.GetBool("PRODUCTION"),
		DefaultPlayer:  strings.TrimSpace(v.GetString("DEFAULT_PLAYER")),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
	}
	if c.RoundSeconds <= 0 {
		return nil, fmt.Errorf("config: ROUND_SECONDS must be positive, got %d", c.RoundSeconds)
	}
	if c.TickInterval <= 0 {
		return nil, fmt.Errorf("config: TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.SessionTTL < 0 {
		return nil, fmt.Errorf("config: SESSION_TTL must not be negative, got %s", c.SessionTTL)
	}
	return c, nil
}
