package renderer

import (
	"strings"
	"testing"
)

func TestRender_KeepsText(t *testing.T) {
	r := New("notty", 80)
	out := r.Render("# Act One\n\nThe detective opens the **first** letter.")
	if !strings.Contains(out, "Act One") || !strings.Contains(out, "first") {
		t.Fatalf("expected rendered text to keep content, got %q", out)
	}
}

func TestRender_NilFallsBackToPlain(t *testing.T) {
	var r *Renderer
	if got := r.Render("plain"); got != "plain" {
		t.Fatalf("expected plain fallback, got %q", got)
	}
}
