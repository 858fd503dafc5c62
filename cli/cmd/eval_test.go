package cmd

import (
	"context"
	"testing"

	"github.com/rensoftworks/slang/lang"
)

func parseDoc(t *testing.T, source string) *lang.Map {
	t.Helper()

	doc, err := lang.ParseString(context.Background(), source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	return doc
}

func TestEvalExpr(t *testing.T) {
	doc := parseDoc(t, `
port = 8080
host = "localhost"
limits = { max = 10, min = 2 }
tags = [alpha, beta]
`)

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"arithmetic", "port + 1", "8081"},
		{"member access", "limits.max * limits.min", "20"},
		{"string concat", `host + ":" + string(port)`, `"localhost:8080"`},
		{"array index", "tags[1]", `"beta"`},
		{"comparison", "port > 1024", "true"},
		{"undefined variable", "missing", "null"},
		{"builtin", "len(tags)", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := evalExpr(tt.expr, doc)
			if err != nil {
				t.Fatalf("evalExpr(%q) failed: %v", tt.expr, err)
			}

			if got := formatResult(result); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvalExpr_CompileError(t *testing.T) {
	doc := parseDoc(t, "a = 1")

	_, err := evalExpr("a +", doc)
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestFormatResult_Map(t *testing.T) {
	doc := parseDoc(t, "outer = { inner = true }")

	result, err := evalExpr("outer", doc)
	if err != nil {
		t.Fatalf("evalExpr failed: %v", err)
	}

	if got := formatResult(result); got != "{ inner = true }" {
		t.Errorf("got %s", got)
	}
}
