package modes

import (
	"fmt"
	"slices"
)

// Field describes one named input of a mode
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
	Multiline   bool
	Choices     []string // closed set of allowed values, empty means free text
}

// Spec is the static description of a mode: its inputs, prompt template and
// the copy the UI shows around it.
type Spec struct {
	Mode        Mode
	Title       string
	Description string
	Fields      []Field

	// Template holds one %s verb per field, filled in field order.
	Template string

	Action      string // label of the trigger
	Progress    string // shown while the backend is working
	Success     string
	ResultLabel string
}

// Structures offered by the plot structure mode
var Structures = []string{
	"Three-Act Structure",
	"Hero’s Journey",
	"Freytag’s Pyramid",
}

var order = []Mode{
	ModeStoryIdea,
	ModeCharacter,
	ModePlotStructure,
	ModeDialogue,
	ModeFeedback,
}

var registry = map[Mode]Spec{
	ModeStoryIdea: {
		Mode:        ModeStoryIdea,
		Title:       "Story Ideas",
		Description: "Generate story ideas with AI",
		Fields: []Field{
			{Name: "story_idea", Label: "Enter a story idea", Placeholder: "E.g., A young orphan discovers a magical key...", Required: true, Multiline: true},
		},
		Template:    "Generate a plot idea based on: %s",
		Action:      "Generate Plot",
		Progress:    "Generating your story idea...",
		Success:     "Plot generated successfully!",
		ResultLabel: "Generated Plot",
	},
	ModeCharacter: {
		Mode:        ModeCharacter,
		Title:       "Character Builder",
		Description: "Build a unique character profile",
		Fields: []Field{
			{Name: "character_description", Label: "Describe your character", Placeholder: "E.g., A brave hero with a troubled past...", Required: true},
		},
		Template:    "Generate a unique character profile for: %s",
		Action:      "Generate Character",
		Progress:    "Creating a unique character...",
		Success:     "Character generated successfully!",
		ResultLabel: "Character Profile",
	},
	ModePlotStructure: {
		Mode:        ModePlotStructure,
		Title:       "Plot Structuring",
		Description: "Outline a story along a classic structure",
		Fields: []Field{
			{Name: "structure_choice", Label: "Choose a structure", Required: true, Choices: Structures},
			{Name: "story_text", Label: "Enter your story idea", Placeholder: "E.g., A detective receives anonymous letters predicting crimes...", Required: true, Multiline: true},
		},
		Template:    "Suggest a %s outline for: %s",
		Action:      "Get Structure",
		Progress:    "Structuring your story...",
		Success:     "Story structure generated!",
		ResultLabel: "Story Structure",
	},
	ModeDialogue: {
		Mode:        ModeDialogue,
		Title:       "Dialogue Helper",
		Description: "Write dialogue for a scene",
		Fields: []Field{
			{Name: "scene", Label: "Describe a scene for dialogue generation", Placeholder: "E.g., A heated argument between a detective and a suspect...", Required: true, Multiline: true},
		},
		Template:    "Generate a dialogue for: %s",
		Action:      "Generate Dialogue",
		Progress:    "Generating dialogue...",
		Success:     "Dialogue generated!",
		ResultLabel: "Generated Dialogue",
	},
	ModeFeedback: {
		Mode:        ModeFeedback,
		Title:       "Editing & Feedback",
		Description: "Get feedback on a piece of writing",
		Fields: []Field{
			{Name: "writing", Label: "Enter your text for feedback", Placeholder: "Paste your writing here, or @file.md to load it", Required: true, Multiline: true},
		},
		Template:    "Give feedback on this writing: %s",
		Action:      "Get Feedback",
		Progress:    "Analyzing your text...",
		Success:     "Feedback generated!",
		ResultLabel: "Writing Feedback",
	},
}

// SpecFor returns the spec of m. Every Mode constant has an entry, so an
// unknown mode is a programming error.
func SpecFor(m Mode) Spec {
	spec, ok := registry[m]
	if !ok {
		panic(fmt.Sprintf("modes: no spec registered for %q", m))
	}
	return spec.clone()
}

// All returns every spec in menu order
func All() []Spec {
	specs := make([]Spec, 0, len(order))
	for _, m := range order {
		specs = append(specs, SpecFor(m))
	}
	return specs
}

// FieldNames returns the field names of s in declaration order
func (s Spec) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Field looks up a field by name
func (s Spec) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// TextField returns the field that inline text fills: the last free text
// field, skipping choice fields.
func (s Spec) TextField() (string, bool) {
	name := ""
	for _, f := range s.Fields {
		if len(f.Choices) == 0 {
			name = f.Name
		}
	}
	return name, name != ""
}

// Render substitutes values into the template positionally, in field order.
// Values are inserted verbatim; callers validate first.
func (s Spec) Render(values map[string]string) string {
	args := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		args = append(args, values[f.Name])
	}
	return fmt.Sprintf(s.Template, args...)
}

func (s Spec) clone() Spec {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Choices = slices.Clone(f.Choices)
		fields[i] = f
	}
	s.Fields = fields
	return s
}
