package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:   HTTPConfig{Port: 8080},
		Vector: VectorConfig{Driver: "qdrant", Host: "localhost"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Vector.Driver = "pinecone"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `vector.driver must be "qdrant" or "memory", got "pinecone"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_QdrantRequiresHost(t *testing.T) {
	cfg := validConfig()
	cfg.Vector.Host = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing qdrant host")
	}
}

func TestValidate_MemoryDriverNoHost(t *testing.T) {
	cfg := validConfig()
	cfg.Vector = VectorConfig{Driver: "memory"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CacheWithoutAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled cache without addrs")
	}
}

func TestValidate_RankingShares(t *testing.T) {
	tests := []struct {
		name    string
		ranking RankingConfig
		wantErr bool
	}{
		{"zero", RankingConfig{}, false},
		{"custom", RankingConfig{ReachShare: 0.2, TargetShare: 0.5, SafetyShare: 0.3}, false},
		{"above one", RankingConfig{TargetShare: 1.5}, true},
		{"negative", RankingConfig{SafetyShare: -0.1}, true},
		{"inverted thresholds", RankingConfig{ReachBelow: 0.4, SafetyFrom: 0.2}, true},
		{"custom weights", RankingConfig{SimilarityWeight: 1, AcademicWeight: 0}, false},
		{"negative weight", RankingConfig{SimilarityWeight: 1, FinancialWeight: -1}, true},
		{"weights cancelling out", RankingConfig{SimilarityWeight: 0.5, FinancialWeight: 0.5, AcademicWeight: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Ranking = tt.ranking
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Vector.Driver != "qdrant" {
		t.Errorf("expected Driver=qdrant, got %q", cfg.Vector.Driver)
	}
	if cfg.Vector.Port != 6334 {
		t.Errorf("expected Port=6334, got %d", cfg.Vector.Port)
	}
	if cfg.Vector.Collection != "universities" {
		t.Errorf("expected Collection=universities, got %q", cfg.Vector.Collection)
	}
	if cfg.Search.Limit != 20 {
		t.Errorf("expected Limit=20, got %d", cfg.Search.Limit)
	}
	if cfg.Search.MinResults != 1 {
		t.Errorf("expected MinResults=1, got %d", cfg.Search.MinResults)
	}
	if cfg.Generation.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("expected groq base url, got %q", cfg.Generation.BaseURL)
	}
	if cfg.Generation.Model != "llama-3.1-8b-instant" {
		t.Errorf("expected llama-3.1-8b-instant, got %q", cfg.Generation.Model)
	}
	if cfg.Cache.TTLHours != 168 {
		t.Errorf("expected TTLHours=168, got %d", cfg.Cache.TTLHours)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 90},
		Vector:     VectorConfig{Driver: "memory", Collection: "programs"},
		Generation: GenerationConfig{Provider: "openai"},
		Search:     SearchConfig{Limit: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Vector.Collection != "programs" {
		t.Errorf("expected Collection=programs, got %q", cfg.Vector.Collection)
	}
	if cfg.Generation.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("expected openai preset, got %q", cfg.Generation.BaseURL)
	}
	if cfg.Search.Limit != 50 {
		t.Errorf("expected Limit=50, got %d", cfg.Search.Limit)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("UNIMATCH_TEST_QDRANT", "qdrant.internal")

	path := filepath.Join(t.TempDir(), "test.yaml")
	body := `
http:
  port: 8080
vector:
  host: ${UNIMATCH_TEST_QDRANT}
  collection: ${UNIMATCH_TEST_MISSING:-fallback}
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Vector.Host != "qdrant.internal" {
		t.Errorf("expected expanded host, got %q", cfg.Vector.Host)
	}
	if cfg.Vector.Collection != "fallback" {
		t.Errorf("expected default value, got %q", cfg.Vector.Collection)
	}
}

func TestApplyDefaults_DropsBlankAPIKeys(t *testing.T) {
	cfg := Config{Auth: AuthConfig{APIKeys: []string{"", " key-1 ", "  "}}}
	cfg.ApplyDefaults()

	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "key-1" {
		t.Errorf("expected only key-1, got %q", cfg.Auth.APIKeys)
	}
}
