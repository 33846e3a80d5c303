package generation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yourusername/talecraft/internal/logger"
	"github.com/yourusername/talecraft/internal/modes"
)

// countingBackend records every prompt it receives
type countingBackend struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (b *countingBackend) Complete(_ context.Context, prompt string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompts = append(b.prompts, prompt)
	return b.reply, b.err
}

func (b *countingBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.prompts)
}

func TestGenerate_PlotStructureScenario(t *testing.T) {
	backend := &countingBackend{reply: "Act One: ..."}
	res := Generate(context.Background(), backend, Request{
		Mode: modes.ModePlotStructure,
		Fields: map[string]string{
			"structure_choice": "Three-Act Structure",
			"story_text":       "A detective receives anonymous letters",
		},
	})

	if !res.OK() {
		t.Fatalf("expected success, got %v: %s", res.Kind, res.Message)
	}
	if res.Text != "Act One: ..." {
		t.Fatalf("expected text unchanged, got %q", res.Text)
	}
	if backend.calls() != 1 {
		t.Fatalf("expected exactly 1 backend call, got %d", backend.calls())
	}
	want := "Suggest a Three-Act Structure outline for: A detective receives anonymous letters"
	if backend.prompts[0] != want {
		t.Fatalf("expected prompt %q, got %q", want, backend.prompts[0])
	}
}

func TestGenerate_MissingFieldNeverCallsBackend(t *testing.T) {
	for _, spec := range modes.All() {
		backend := &countingBackend{reply: "unused"}
		res := Generate(context.Background(), backend, Request{Mode: spec.Mode, Fields: map[string]string{}})

		if res.Kind != InvalidInput {
			t.Fatalf("mode %s: expected InvalidInput, got %v", spec.Mode, res.Kind)
		}
		for _, name := range spec.FieldNames() {
			if !strings.Contains(res.Message, name) {
				t.Fatalf("mode %s: expected message to list %s, got %q", spec.Mode, name, res.Message)
			}
		}
		if backend.calls() != 0 {
			t.Fatalf("mode %s: backend called %d times", spec.Mode, backend.calls())
		}
	}
}

func TestGenerate_CharacterWithoutFields(t *testing.T) {
	backend := &countingBackend{}
	res := Generate(context.Background(), backend, Request{Mode: modes.ModeCharacter})
	if res.Kind != InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", res.Kind)
	}
	if backend.calls() != 0 {
		t.Fatalf("backend should not be called")
	}
}

func TestGenerate_RejectsUnknownFieldsAndModes(t *testing.T) {
	backend := &countingBackend{}

	res := Generate(context.Background(), backend, Request{
		Mode:   modes.ModeDialogue,
		Fields: map[string]string{"scene": "a duel", "mood": "tense"},
	})
	if res.Kind != InvalidInput || !strings.Contains(res.Message, "mood") {
		t.Fatalf("expected InvalidInput naming mood, got %v %q", res.Kind, res.Message)
	}

	res = Generate(context.Background(), backend, Request{Mode: "sonnet", Fields: map[string]string{"x": "y"}})
	if res.Kind != InvalidInput {
		t.Fatalf("expected InvalidInput for unknown mode, got %v", res.Kind)
	}
	if backend.calls() != 0 {
		t.Fatalf("backend should not be called, got %d", backend.calls())
	}
}

func TestGenerate_BackendError(t *testing.T) {
	backend := &countingBackend{err: errors.New("quota exceeded")}
	res := Generate(context.Background(), backend, Request{
		Mode:   modes.ModeFeedback,
		Fields: map[string]string{"writing": "It was a dark and stormy night."},
	})
	if res.Kind != BackendError {
		t.Fatalf("expected BackendError, got %v", res.Kind)
	}
	if !strings.Contains(res.Message, "quota exceeded") {
		t.Fatalf("expected backend message to pass through, got %q", res.Message)
	}
}

func TestGenerate_EmptyErrorMessageStillDescribed(t *testing.T) {
	backend := &countingBackend{err: errors.New("")}
	res := Generate(context.Background(), backend, Request{
		Mode:   modes.ModeStoryIdea,
		Fields: map[string]string{"story_idea": "a key"},
	})
	if res.Kind != BackendError || res.Message == "" {
		t.Fatalf("expected described BackendError, got %v %q", res.Kind, res.Message)
	}
}

func TestGenerate_BackendPanicRecovered(t *testing.T) {
	backend := BackendFunc(func(context.Context, string) (string, error) {
		panic("malformed response")
	})
	res := Generate(context.Background(), backend, Request{
		Mode:   modes.ModeStoryIdea,
		Fields: map[string]string{"story_idea": "a key"},
	})
	if res.Kind != BackendError || !strings.Contains(res.Message, "malformed response") {
		t.Fatalf("expected recovered BackendError, got %v %q", res.Kind, res.Message)
	}
}

func TestGenerate_NilBackend(t *testing.T) {
	res := Generate(context.Background(), nil, Request{
		Mode:   modes.ModeStoryIdea,
		Fields: map[string]string{"story_idea": "a key"},
	})
	if res.Kind != BackendError {
		t.Fatalf("expected BackendError, got %v", res.Kind)
	}
}

func TestGenerate_EmptyTextIsSuccess(t *testing.T) {
	backend := &countingBackend{reply: ""}
	res := Generate(context.Background(), backend, Request{
		Mode:   modes.ModeDialogue,
		Fields: map[string]string{"scene": "two strangers on a train"},
	})
	if !res.OK() || res.Text != "" {
		t.Fatalf("expected Success(\"\"), got %+v", res)
	}
}

func TestGenerate_TextNotMutated(t *testing.T) {
	reply := "  ## Heading\n\n- keep *all* whitespace  \n"
	backend := &countingBackend{reply: reply}
	res := Generate(context.Background(), backend, Request{
		Mode:   modes.ModeCharacter,
		Fields: map[string]string{"character_description": "a retired pirate"},
	})
	if res.Text != reply {
		t.Fatalf("expected %q, got %q", reply, res.Text)
	}
}

func TestFacade_PerModeBackend(t *testing.T) {
	fallback := &countingBackend{reply: "default"}
	dialogue := &countingBackend{reply: "special"}
	f := New(fallback, WithModeBackend(modes.ModeDialogue, dialogue), WithLogger(logger.Discard()))

	res := f.Generate(context.Background(), Request{
		Mode:   modes.ModeDialogue,
		Fields: map[string]string{"scene": "a wedding"},
	})
	if res.Text != "special" {
		t.Fatalf("expected per-mode backend, got %q", res.Text)
	}

	res = f.Generate(context.Background(), Request{
		Mode:   modes.ModeFeedback,
		Fields: map[string]string{"writing": "draft"},
	})
	if res.Text != "default" {
		t.Fatalf("expected default backend, got %q", res.Text)
	}
	if fallback.calls() != 1 || dialogue.calls() != 1 {
		t.Fatalf("unexpected call counts: default=%d dialogue=%d", fallback.calls(), dialogue.calls())
	}
}

func TestFacade_Timeout(t *testing.T) {
	slow := BackendFunc(func(ctx context.Context, _ string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	})
	f := New(slow, WithTimeout(20*time.Millisecond), WithLogger(logger.Discard()))

	res := f.Generate(context.Background(), Request{
		Mode:   modes.ModeStoryIdea,
		Fields: map[string]string{"story_idea": "a lighthouse"},
	})
	if res.Kind != BackendError {
		t.Fatalf("expected BackendError on timeout, got %+v", res)
	}
	if !strings.Contains(res.Message, "deadline") {
		t.Fatalf("expected deadline message, got %q", res.Message)
	}
}

func TestFacade_ConcurrentUse(t *testing.T) {
	backend := &countingBackend{reply: "ok"}
	f := New(backend, WithLogger(logger.Discard()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Generate(context.Background(), Request{
				Mode:   modes.ModeCharacter,
				Fields: map[string]string{"character_description": "a twin"},
			})
		}()
	}
	wg.Wait()

	if backend.calls() != 20 {
		t.Fatalf("expected 20 calls, got %d", backend.calls())
	}
}
