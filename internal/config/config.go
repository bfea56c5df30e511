// Package config loads application settings from a TOML file with
// environment-variable overrides. A missing file falls back to defaults so a
// fully env-driven deployment needs no config.toml at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ErrMissingCredentials is returned by Validate when the Spotify client
// credentials are absent.
var ErrMissingCredentials = errors.New("config: missing spotify client credentials")

// Config is the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Spotify SpotifyConfig `toml:"spotify"`
	Groq    GroqConfig    `toml:"groq"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	WebOrigin string `toml:"web_origin"`
}

// SpotifyConfig contains catalog API credentials and OAuth settings.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	Scopes       string `toml:"scopes"`
}

// GroqConfig contains the language-model endpoint settings. An empty APIKey
// is a valid runtime mode: every LLM-backed stage has a deterministic
// fallback.
type GroqConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      3001,
			WebOrigin: "http://localhost:3000",
		},
		Spotify: SpotifyConfig{
			RedirectURI: "http://127.0.0.1:3001/auth/callback",
			Scopes:      "user-top-read playlist-modify-public playlist-modify-private",
		},
		Groq: GroqConfig{
			Model: "llama-3.1-8b-instant",
		},
	}
}

// Load reads and parses a TOML configuration file, then applies environment
// overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	setString(&c.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	setString(&c.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	setString(&c.Spotify.RedirectURI, "SPOTIFY_REDIRECT_URI")
	setString(&c.Spotify.Scopes, "SCOPES")
	setString(&c.Groq.APIKey, "GROQ_API_KEY")
	setString(&c.Groq.Model, "GROQ_MODEL")
	setString(&c.Server.WebOrigin, "WEB_ORIGIN")
	setString(&c.Server.Host, "HOST")
	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the settings required to serve.
func (c *Config) Validate() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
