package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noSkeinTomlMessage = "no skein.toml found\nplease name the tree files explicitly, e.g.:\n  skeinc compile dialogue/*.skt.json"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Inputs  inputsConfig  `toml:"inputs"`
	Strings stringsConfig `toml:"strings"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type inputsConfig struct {
	// Trees globs the syntax-tree exports, relative to the manifest.
	Trees []string `toml:"trees"`
}

type stringsConfig struct {
	// Output is where `skeinc strings` writes its CSV by default.
	Output string `toml:"output"`
}

func findSkeinToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "skein.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findSkeinToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("inputs") || len(cfg.Inputs.Trees) == 0 {
		return projectConfig{}, fmt.Errorf("%s: missing [inputs].trees", path)
	}
	return cfg, nil
}

// resolveManifestTrees expands the manifest's tree globs against the
// project root. Globs that match nothing are an error: a manifest
// naming inputs that do not exist is a misconfiguration, not an empty
// compile.
func resolveManifestTrees(manifest *projectManifest) ([]string, error) {
	if manifest == nil {
		return nil, fmt.Errorf("missing project manifest")
	}
	var paths []string
	for _, pattern := range manifest.Config.Inputs.Trees {
		full := filepath.Join(manifest.Root, filepath.FromSlash(pattern))
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("%s: bad [inputs].trees pattern %q: %w", manifest.Path, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: [inputs].trees pattern %q matches no files", manifest.Path, pattern)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
