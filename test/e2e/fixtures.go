package e2e

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// CourseFile and ForumFile are the data file names written by WriteFixtures.
	CourseFile = "course.jsonl"
	ForumFile  = "forum.jsonl"
)

// configTemplate points the corpus at files next to the config, using
// "./" paths so they resolve relative to the config directory.
const configTemplate = `server:
  host: "127.0.0.1"
  port: 0
  rate_limit: -1
corpus:
  course_paths: ["./missing-course.jsonl", "./%s"]
  forum_paths: ["./%s"]
answer:
  top_k: 5
  link_limit: 3
`

// WriteFixtures writes the corpus data files and a config.yaml into dir and
// returns the config path.
func WriteFixtures(dir string, c *Corpus) (string, error) {
	if err := os.WriteFile(filepath.Join(dir, CourseFile), c.CourseJSONL(), 0600); err != nil {
		return "", fmt.Errorf("write course fixture: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ForumFile), c.ForumJSONL(), 0600); err != nil {
		return "", fmt.Errorf("write forum fixture: %w", err)
	}
	configPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(configTemplate, CourseFile, ForumFile)
	if err := os.WriteFile(configPath, []byte(cfg), 0600); err != nil {
		return "", fmt.Errorf("write config fixture: %w", err)
	}
	return configPath, nil
}
