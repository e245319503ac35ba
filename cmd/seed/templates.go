package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type templateSeed struct {
	Category    string   `yaml:"category"`
	Subcategory string   `yaml:"subcategory"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Duration    int      `yaml:"duration"`
	Difficulty  string   `yaml:"difficulty"`
	Questions   []string `yaml:"questions"`
	Inactive    bool     `yaml:"inactive"`
}

type seedFile struct {
	Templates []templateSeed `yaml:"templates"`
}

func loadTemplates(path string) ([]templateSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseTemplates(raw)
}

// parseTemplates rejects entries the API could not serve and fills defaults.
func parseTemplates(raw []byte) ([]templateSeed, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := map[string]bool{}
	for i := range f.Templates {
		t := &f.Templates[i]
		t.Category = strings.TrimSpace(t.Category)
		t.Subcategory = strings.TrimSpace(t.Subcategory)
		if t.Category == "" || t.Title == "" {
			return nil, fmt.Errorf("template %d: category and title are required", i)
		}
		key := t.Category + "/" + t.Subcategory
		if seen[key] {
			return nil, fmt.Errorf("template %d: duplicate topic %s", i, key)
		}
		seen[key] = true
		if t.Duration <= 0 {
			t.Duration = 30
		}
		if t.Difficulty == "" {
			t.Difficulty = "Medium"
		}
	}
	return f.Templates, nil
}
