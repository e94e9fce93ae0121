package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

func recommend(ctx context.Context, configPath, profilePath string, pretty bool, out io.Writer) error {
	in, err := readProfile(profilePath)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.pipeline.Run(ctx, in)

	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func readProfile(path string) (domain.ProfileInput, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return domain.ProfileInput{}, fmt.Errorf("open profile: %w", err)
		}
		defer f.Close()
		r = f
	}

	var in domain.ProfileInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return domain.ProfileInput{}, fmt.Errorf("decode profile: %w", err)
	}
	return in, nil
}
