// Package prompts builds the system and user prompts sent to the model.
// Templates are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
)

//go:embed templates/*.json
var templateFiles embed.FS

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// get retrieves a template by file name (without extension) and key.
func get(file, key string) (string, error) {
	templates, err := loadFile(file)
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return tmpl, nil
}

// mustGet panics on a missing template. Every key it is called with is
// covered by the package tests.
func mustGet(file, key string) string {
	tmpl, err := get(file, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

var placeholder = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// format replaces {{.Key}} placeholders with values from data in one pass,
// so substituted values are never expanded again. Unknown keys are kept.
func format(template string, data map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		if value, ok := data[m[3:len(m)-2]]; ok {
			return value
		}
		return m
	})
}

func loadFile(file string) (map[string]string, error) {
	cacheMu.RLock()
	if templates, ok := cache[file]; ok {
		cacheMu.RUnlock()
		return templates, nil
	}
	cacheMu.RUnlock()

	data, err := templateFiles.ReadFile("templates/" + file + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}

	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}

	cacheMu.Lock()
	cache[file] = templates
	cacheMu.Unlock()

	return templates, nil
}
