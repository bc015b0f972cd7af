package config

import "time"

const (
	courseFile = "CourseContentData.jsonl"
	forumFile  = "DicourseData.jsonl"
)

// candidatePaths returns name in the working directory, its parent, and data/.
func candidatePaths(name string) []string {
	return []string{name, "../" + name, "data/" + name}
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = "*"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 20
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = 40
	}
	if cfg.Corpus.CoursePaths == nil {
		cfg.Corpus.CoursePaths = candidatePaths(courseFile)
	}
	if cfg.Corpus.ForumPaths == nil {
		cfg.Corpus.ForumPaths = candidatePaths(forumFile)
	}
	if cfg.Answer.TopK == 0 {
		cfg.Answer.TopK = 5
	}
	if cfg.Answer.LinkLimit == 0 {
		cfg.Answer.LinkLimit = 3
	}
}
