package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "skein.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindSkeinTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[inputs]\ntrees = [\"*.skt.json\"]\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, found, err := findSkeinToml(nested)
	if err != nil {
		t.Fatalf("findSkeinToml: %v", err)
	}
	if !found {
		t.Fatal("expected to find skein.toml above the start directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want one in %q", path, root)
	}
}

func TestFindSkeinTomlMissing(t *testing.T) {
	_, found, err := findSkeinToml(t.TempDir())
	if err != nil {
		t.Fatalf("findSkeinToml: %v", err)
	}
	if found {
		t.Fatal("found a manifest in an empty directory")
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "valid",
			content: "[package]\nname = \"demo\"\n\n[inputs]\ntrees = [\"dialogue/*.skt.json\"]\n",
		},
		{
			name:    "missing package",
			content: "[inputs]\ntrees = [\"*.skt.json\"]\n",
			wantErr: "missing [package]",
		},
		{
			name:    "blank name",
			content: "[package]\nname = \"  \"\n\n[inputs]\ntrees = [\"*.skt.json\"]\n",
			wantErr: "missing [package].name",
		},
		{
			name:    "missing inputs",
			content: "[package]\nname = \"demo\"\n",
			wantErr: "missing [inputs].trees",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.content)
			cfg, err := loadProjectConfig(path)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("loadProjectConfig: %v", err)
				}
				if cfg.Package.Name != "demo" {
					t.Errorf("package name = %q, want demo", cfg.Package.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestResolveManifestTrees(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"intro.skt.json", "chapter1.skt.json"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write tree: %v", err)
		}
	}
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[inputs]\ntrees = [\"*.skt.json\"]\n")

	manifest, found, err := loadProjectManifest(root)
	if err != nil || !found {
		t.Fatalf("loadProjectManifest: found=%v err=%v", found, err)
	}

	paths, err := resolveManifestTrees(manifest)
	if err != nil {
		t.Fatalf("resolveManifestTrees: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}

	manifest.Config.Inputs.Trees = []string{"nothing/*.skt.json"}
	if _, err := resolveManifestTrees(manifest); err == nil {
		t.Fatal("expected an error for a glob matching no files")
	}
}
