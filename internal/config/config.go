package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the unimatch configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
	Vector     VectorConfig     `yaml:"vector"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Cache      CacheConfig      `yaml:"cache"`
	Search     SearchConfig     `yaml:"search"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// VectorConfig holds vector index connection settings.
type VectorConfig struct {
	Driver           string `yaml:"driver"` // qdrant, memory (default: qdrant)
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	APIKey           string `yaml:"api_key"`
	Collection       string `yaml:"collection"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Model            string `yaml:"model"`
	Dimensions       int    `yaml:"dimensions"`
	QueryInstruction string `yaml:"query_instruction"`
}

// GenerationConfig holds chat completion settings for enrichment and plans.
type GenerationConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Provider    string  `yaml:"provider"` // groq, openai (sets default base_url)
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// SearchConfig holds relaxation search settings.
type SearchConfig struct {
	Limit      int `yaml:"limit"`
	MinResults int `yaml:"min_results"`
}

// RankingConfig holds scoring weights, category cutoffs and portfolio shape.
// Zero values fall back to the ranker defaults.
type RankingConfig struct {
	SimilarityWeight float64 `yaml:"similarity_weight"`
	FinancialWeight  float64 `yaml:"financial_weight"`
	AcademicWeight   float64 `yaml:"academic_weight"`
	ReachBelow       float64 `yaml:"reach_below"`
	SafetyFrom       float64 `yaml:"safety_from"`
	PromoteAt        float64 `yaml:"promote_at"`
	DemoteAt         float64 `yaml:"demote_at"`
	ReachShare       float64 `yaml:"reach_share"`
	TargetShare      float64 `yaml:"target_share"`
	SafetyShare      float64 `yaml:"safety_share"`
	ShortlistSize    int     `yaml:"shortlist_size"`
	MinTotal         int     `yaml:"min_total"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint"` // empty disables tracing
	SampleRate   float64 `yaml:"sample_rate"`
}

var generationPresets = map[string]string{
	"groq":   "https://api.groq.com/openai/v1",
	"openai": "https://api.openai.com/v1",
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	keys := c.Auth.APIKeys[:0]
	for _, k := range c.Auth.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	c.Auth.APIKeys = keys
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Vector.Driver == "" {
		c.Vector.Driver = "qdrant"
	}
	if c.Vector.Port <= 0 {
		c.Vector.Port = 6334
	}
	if c.Vector.Collection == "" {
		c.Vector.Collection = "universities"
	}
	if c.Vector.ReadinessTimeout <= 0 {
		c.Vector.ReadinessTimeout = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = "groq"
	}
	if c.Generation.BaseURL == "" {
		c.Generation.BaseURL = generationPresets[c.Generation.Provider]
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "llama-3.1-8b-instant"
	}
	if c.Generation.Temperature <= 0 {
		c.Generation.Temperature = 0.7
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = 1500
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 30
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 7
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = 20
	}
	if c.Search.MinResults <= 0 {
		c.Search.MinResults = 1
	}
	if c.Tracing.SampleRate <= 0 {
		c.Tracing.SampleRate = 1.0
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Vector.Driver {
	case "qdrant":
		if c.Vector.Host == "" {
			return fmt.Errorf("vector.host is required for the qdrant driver")
		}
	case "memory":
	default:
		return fmt.Errorf("vector.driver must be \"qdrant\" or \"memory\", got %q", c.Vector.Driver)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	if c.Generation.Enabled && c.Generation.BaseURL == "" {
		return fmt.Errorf("generation.base_url is required for provider %q", c.Generation.Provider)
	}
	weights := []struct {
		name string
		v    float64
	}{
		{"similarity_weight", c.Ranking.SimilarityWeight},
		{"financial_weight", c.Ranking.FinancialWeight},
		{"academic_weight", c.Ranking.AcademicWeight},
	}
	// All-zero weights select the defaults; any other set sums above zero once non-negative.
	for _, w := range weights {
		if w.v < 0 {
			return fmt.Errorf("ranking.%s must not be negative, got %v", w.name, w.v)
		}
	}
	shares := []struct {
		name string
		v    float64
	}{
		{"reach_share", c.Ranking.ReachShare},
		{"target_share", c.Ranking.TargetShare},
		{"safety_share", c.Ranking.SafetyShare},
	}
	for _, s := range shares {
		if s.v < 0 || s.v > 1 {
			return fmt.Errorf("ranking.%s must be within [0, 1], got %v", s.name, s.v)
		}
	}
	if c.Ranking.ReachBelow > 0 && c.Ranking.SafetyFrom > 0 && c.Ranking.ReachBelow >= c.Ranking.SafetyFrom {
		return fmt.Errorf("ranking.reach_below (%v) must be lower than ranking.safety_from (%v)",
			c.Ranking.ReachBelow, c.Ranking.SafetyFrom)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
