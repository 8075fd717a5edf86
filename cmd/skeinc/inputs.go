package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"skein/internal/syntax"
)

// treeInput is one syntax-tree export read off disk. The raw bytes
// stick around for cache digests.
type treeInput struct {
	Path string
	Raw  []byte
	File syntax.File
}

// resolveTreePaths turns command arguments into tree file paths. With
// no arguments the project manifest decides; a directory argument
// means every .skt.json under it.
func resolveTreePaths(args []string) ([]string, error) {
	if len(args) == 0 {
		manifest, found, err := loadProjectManifest(".")
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.New(noSkeinTomlMessage)
		}
		return resolveManifestTrees(manifest)
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.skt.json"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no .skt.json files", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// readTrees loads and decodes every tree file. Decode failures stop
// the command: a tree the front end did not finish writing is not
// worth partial diagnostics.
func readTrees(paths []string) ([]treeInput, error) {
	inputs := make([]treeInput, 0, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", p, err)
		}
		f, err := syntax.DecodeFile(p, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		inputs = append(inputs, treeInput{Path: p, Raw: raw, File: f})
	}
	return inputs, nil
}

func filesOf(inputs []treeInput) []syntax.File {
	files := make([]syntax.File, len(inputs))
	for i, in := range inputs {
		files[i] = in.File
	}
	return files
}
