package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mahendramedapati27/unimatch/internal/config"
	"github.com/mahendramedapati27/unimatch/internal/domain"
)

func TestReadProfile(t *testing.T) {
	in, err := readProfile(filepath.Join("..", "..", "testdata", "profile.json"))
	if err != nil {
		t.Fatalf("readProfile: %v", err)
	}
	p := domain.NewProfile(in)
	if p.Level != domain.LevelMasters {
		t.Errorf("expected masters level, got %q", p.Level)
	}
	if len(p.TargetCountries) != 2 {
		t.Errorf("expected 2 target countries, got %v", p.TargetCountries)
	}
}

func TestReadProfile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readProfile(path); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := readProfile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected open error")
	}
}

func TestRankingConfig(t *testing.T) {
	rc := rankingConfig(config.RankingConfig{SimilarityWeight: 0.5, ShortlistSize: 12, SafetyShare: 0.2})
	if rc.SimilarityWeight != 0.5 || rc.ShortlistSize != 12 || rc.SafetyShare != 0.2 {
		t.Errorf("unexpected mapping %+v", rc)
	}
}
