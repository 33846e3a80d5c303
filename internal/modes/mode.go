package modes

import (
	"fmt"
	"strings"
)

// Mode identifies one of the fixed storytelling interaction types
type Mode string

// Available modes
const (
	ModeStoryIdea     Mode = "story-idea"
	ModeCharacter     Mode = "character"
	ModePlotStructure Mode = "plot-structure"
	ModeDialogue      Mode = "dialogue"
	ModeFeedback      Mode = "feedback"
)

// aliases are the short names accepted on the command line and in slash commands
var aliases = map[string]Mode{
	"idea":      ModeStoryIdea,
	"home":      ModeStoryIdea,
	"char":      ModeCharacter,
	"plot":      ModePlotStructure,
	"structure": ModePlotStructure,
	"talk":      ModeDialogue,
	"edit":      ModeFeedback,
}

// Valid reports whether m is one of the registered modes
func (m Mode) Valid() bool {
	_, ok := registry[m]
	return ok
}

func (m Mode) String() string {
	return string(m)
}

// Parse resolves a mode id or alias, case-insensitively
func Parse(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if m := Mode(key); m.Valid() {
		return m, nil
	}
	if m, ok := aliases[key]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", name)
}

// Names returns the ids of all modes in menu order
func Names() []string {
	names := make([]string, 0, len(order))
	for _, m := range order {
		names = append(names, string(m))
	}
	return names
}
