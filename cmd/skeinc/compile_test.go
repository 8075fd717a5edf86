package main

import (
	"testing"

	"skein/internal/compiler"
	"skein/internal/diag"
	"skein/internal/program"
	"skein/internal/source"
)

func TestCacheWorthy(t *testing.T) {
	clean := compiler.Result{Program: program.New()}
	if !cacheWorthy(clean) {
		t.Fatalf("clean result rejected")
	}

	if cacheWorthy(compiler.Result{}) {
		t.Fatalf("result without a program accepted")
	}

	// A cache hit never prints diagnostics, so storing a result with
	// warnings would silence them on every warm run.
	warned := compiler.Result{
		Program: program.New(),
		Diagnostics: []diag.Diagnostic{
			diag.NewWarning(diag.GenUndeclaredVariable, "a.skt.json", source.Span{},
				"variable $gold was never declared"),
		},
	}
	if cacheWorthy(warned) {
		t.Fatalf("result with diagnostics accepted")
	}
}
