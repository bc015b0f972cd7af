package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
  request_timeout: 5s
answer:
  top_k: 7
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("request_timeout = %v, want 5s", cfg.Server.RequestTimeout)
	}
	if cfg.Answer.TopK != 7 {
		t.Errorf("top_k = %d, want 7", cfg.Answer.TopK)
	}
	if cfg.Answer.LinkLimit != 3 {
		t.Errorf("link_limit should default to 3, got %d", cfg.Answer.LinkLimit)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if len(cfg.Corpus.CoursePaths) != 3 || cfg.Corpus.CoursePaths[0] != "CourseContentData.jsonl" {
		t.Errorf("course paths: got %v", cfg.Corpus.CoursePaths)
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [oops"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
corpus:
  course_paths: ["./data/course.jsonl", "relative/course.jsonl", "/abs/course.jsonl"]
  forum_paths: ["./data/forum.jsonl"]
answer:
  knowledge_path: "./knowledge.yaml"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "data", "course.jsonl"), "relative/course.jsonl", "/abs/course.jsonl"}
	for i, w := range want {
		if cfg.Corpus.CoursePaths[i] != w {
			t.Errorf("course_paths[%d] = %s, want %s", i, cfg.Corpus.CoursePaths[i], w)
		}
	}
	if cfg.Corpus.ForumPaths[0] != filepath.Join(dir, "data", "forum.jsonl") {
		t.Errorf("forum_paths[0] = %s", cfg.Corpus.ForumPaths[0])
	}
	if cfg.Answer.KnowledgePath != filepath.Join(dir, "knowledge.yaml") {
		t.Errorf("knowledge_path = %s", cfg.Answer.KnowledgePath)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Server.AllowedOrigin != "*" {
		t.Errorf("default allowed origin: got %s", cfg.Server.AllowedOrigin)
	}
	if cfg.Server.RequestTimeout != 60*time.Second {
		t.Errorf("default request timeout: got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Server.RateLimit != 20 || cfg.Server.RateBurst != 40 {
		t.Errorf("default rate limit: got %v/%d", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}
	if cfg.Answer.TopK != 5 || cfg.Answer.LinkLimit != 3 {
		t.Errorf("answer defaults: got %+v", cfg.Answer)
	}
	wantForum := []string{"DicourseData.jsonl", "../DicourseData.jsonl", "data/DicourseData.jsonl"}
	if len(cfg.Corpus.ForumPaths) != len(wantForum) {
		t.Fatalf("forum paths: got %v", cfg.Corpus.ForumPaths)
	}
	for i := range wantForum {
		if cfg.Corpus.ForumPaths[i] != wantForum[i] {
			t.Errorf("forum_paths[%d] = %s, want %s", i, cfg.Corpus.ForumPaths[i], wantForum[i])
		}
	}
}

func TestApplyDefaults_negativeRateLimitKept(t *testing.T) {
	cfg := &Config{Server: ServerConfig{RateLimit: -1}}
	ApplyDefaults(cfg)
	if cfg.Server.RateLimit != -1 {
		t.Errorf("negative rate limit disables limiting and must be kept, got %v", cfg.Server.RateLimit)
	}
}

func TestCorpusConfig_SeedPostsOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		c := &CorpusConfig{}
		if got := c.SeedPostsOrDefault(); !got {
			t.Errorf("SeedPostsOrDefault() = %v, want true", got)
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		c := &CorpusConfig{SeedPosts: &f}
		if got := c.SeedPostsOrDefault(); got {
			t.Errorf("SeedPostsOrDefault() = %v, want false", got)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{"PORT": "9191", "KOTAE_DEBUG": "true"}
	cfg := &Config{}
	ApplyDefaults(cfg)
	if err := ApplyEnv(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, want 9191", cfg.Server.Port)
	}
	if !cfg.Debug {
		t.Error("debug should be enabled by KOTAE_DEBUG")
	}
}

func TestApplyEnv_invalidValues(t *testing.T) {
	env := map[string]string{"PORT": "eighty", "KOTAE_DEBUG": "maybe"}
	cfg := &Config{}
	ApplyDefaults(cfg)
	if err := ApplyEnv(cfg, func(k string) string { return env[k] }); err == nil {
		t.Error("expected error for invalid env values")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("invalid PORT must not change the port, got %d", cfg.Server.Port)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := &ServerConfig{Host: "localhost", Port: 8080}
	if s.Addr() != "localhost:8080" {
		t.Errorf("Addr() = %s", s.Addr())
	}
}
