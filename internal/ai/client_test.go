package ai

import (
	"context"
	"strings"
	"testing"
)

type staticGenerator string

func (s staticGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	return string(s), nil
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register("gemini", staticGenerator("g"))
	reg.Register("local", staticGenerator("l"))

	gen, err := reg.Lookup("gemini")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	reply, _ := gen.Generate(context.Background(), "p", "m")
	if reply != "g" {
		t.Fatalf("wrong backend resolved: %q", reply)
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	reg := NewRegistry()
	reg.Register("gemini", staticGenerator("g"))

	_, err := reg.Lookup("claude")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), `"claude"`) || !strings.Contains(err.Error(), "gemini") {
		t.Fatalf("error should name the provider and the available ones: %v", err)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register("gemini", staticGenerator("old"))
	reg.Register("gemini", staticGenerator("new"))

	gen, err := reg.Lookup("gemini")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if reply, _ := gen.Generate(context.Background(), "p", "m"); reply != "new" {
		t.Fatalf("registration did not replace backend: %q", reply)
	}
}
