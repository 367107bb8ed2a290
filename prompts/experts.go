// Package prompts renders the system prompts sent to the chat model.
// Prompt text is kept as embedded data so wording changes can be reviewed
// without touching the routing logic.
package prompts

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/experts.yaml templates/secretary.tmpl
var assets embed.FS

type expertPromptFile struct {
	Default string `yaml:"default"`
	Experts []struct {
		Name   string `yaml:"name"`
		Prompt string `yaml:"prompt"`
	} `yaml:"experts"`
}

// ExpertPromptSet maps an expert name to its system prompt. One entry is the
// fallback for names that are not in the set.
type ExpertPromptSet struct {
	prompts     map[string]string
	defaultName string
}

func loadExpertPrompts() (ExpertPromptSet, error) {
	raw, err := assets.ReadFile("data/experts.yaml")
	if err != nil {
		return ExpertPromptSet{}, fmt.Errorf("read expert prompts: %w", err)
	}
	return parseExpertPrompts(raw)
}

func parseExpertPrompts(raw []byte) (ExpertPromptSet, error) {
	var file expertPromptFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return ExpertPromptSet{}, fmt.Errorf("decode expert prompts: %w", err)
	}
	set := ExpertPromptSet{prompts: make(map[string]string, len(file.Experts)), defaultName: file.Default}
	for _, e := range file.Experts {
		if _, dup := set.prompts[e.Name]; dup {
			return ExpertPromptSet{}, fmt.Errorf("duplicate expert prompt %q", e.Name)
		}
		set.prompts[e.Name] = e.Prompt
	}
	if _, ok := set.prompts[set.defaultName]; !ok {
		return ExpertPromptSet{}, fmt.Errorf("default expert prompt %q is missing", set.defaultName)
	}
	return set, nil
}

// Get never fails; unknown names get the default expert's prompt.
func (s ExpertPromptSet) Get(name string) string {
	if p, ok := s.prompts[name]; ok {
		return p
	}
	return s.prompts[s.defaultName]
}

func (s ExpertPromptSet) Has(name string) bool {
	_, ok := s.prompts[name]
	return ok
}

var expertPrompts = func() ExpertPromptSet {
	set, err := loadExpertPrompts()
	if err != nil {
		panic(err)
	}
	return set
}()

// ExpertSystemPrompt returns the system prompt for the named expert.
func ExpertSystemPrompt(name string) string {
	return expertPrompts.Get(name)
}
