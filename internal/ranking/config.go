package ranking

import "github.com/hyperjump/kotae/internal/knowledge"

// DefaultTopK is the number of matches returned when no limit is given.
const DefaultTopK = 5

// RankingConfig holds all configuration for the ranking system.
type RankingConfig struct {
	// TopK caps the number of ranked matches. default: 5
	TopK int `yaml:"top_k"`
	// CommonWordWeight is the score per shared query/content token. default: 1.0
	CommonWordWeight float64 `yaml:"common_word_weight"`
	// KeywordWeights is the domain keyword table. default: knowledge.Default()
	KeywordWeights []knowledge.KeywordWeight `yaml:"keyword_weights"`
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		TopK:             DefaultTopK,
		CommonWordWeight: 1.0,
		KeywordWeights:   knowledge.Default().KeywordWeights,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.TopK <= 0 {
		c.TopK = defaults.TopK
	}
	if c.CommonWordWeight == 0 {
		c.CommonWordWeight = defaults.CommonWordWeight
	}
	if c.KeywordWeights == nil {
		c.KeywordWeights = defaults.KeywordWeights
	}
}
