// Package config provides configuration loading and structs for the kotae server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Corpus CorpusConfig `yaml:"corpus"`
	Answer AnswerConfig `yaml:"answer"`
}

// ServerConfig holds HTTP server settings. RateLimit is the sustained number
// of requests per second; a negative value disables limiting.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	AllowedOrigin  string        `yaml:"allowed_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      float64       `yaml:"rate_limit"`
	RateBurst      int           `yaml:"rate_burst"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CorpusConfig lists candidate paths for each knowledge base file. The first
// existing path of each list is loaded.
type CorpusConfig struct {
	CoursePaths []string `yaml:"course_paths"`
	ForumPaths  []string `yaml:"forum_paths"`
	SeedPosts   *bool    `yaml:"seed_posts"`
}

// SeedPostsOrDefault returns whether built-in forum posts are loaded; defaults to true when unset.
func (c *CorpusConfig) SeedPostsOrDefault() bool {
	if c.SeedPosts != nil {
		return *c.SeedPosts
	}
	return true
}

// AnswerConfig holds retrieval and answer settings. KnowledgePath optionally
// points at a YAML file overriding keyword weights and response texts.
type AnswerConfig struct {
	TopK          int    `yaml:"top_k"`
	LinkLimit     int    `yaml:"link_limit"`
	KnowledgePath string `yaml:"knowledge_path"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// A missing file yields the defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ApplyDefaults(&cfg)
		return &cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for i := range cfg.Corpus.CoursePaths {
		cfg.Corpus.CoursePaths[i] = expandPath(cfg.Corpus.CoursePaths[i], configDir)
	}
	for i := range cfg.Corpus.ForumPaths {
		cfg.Corpus.ForumPaths[i] = expandPath(cfg.Corpus.ForumPaths[i], configDir)
	}
	if cfg.Answer.KnowledgePath != "" {
		cfg.Answer.KnowledgePath = expandPath(cfg.Answer.KnowledgePath, configDir)
	}

	return &cfg, nil
}

// ApplyEnv overrides settings from the environment: PORT sets the listen
// port and KOTAE_DEBUG enables debug logging. Invalid values are reported
// and leave the setting unchanged.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	var errs []error
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("invalid PORT %q", v))
		} else {
			cfg.Server.Port = port
		}
	}
	if v := strings.TrimSpace(getenv("KOTAE_DEBUG")); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid KOTAE_DEBUG %q", v))
		} else {
			cfg.Debug = debug
		}
	}
	return errors.Join(errs...)
}

// expandPath resolves paths starting with "./" relative to configDir. Other
// relative paths are left as-is and resolve against the working directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
