package editor

import (
	"fmt"

	"github.com/go-drift/codeview/pkg/engine"
)

// createModel builds a model tagged with language, or fallback when
// language is empty.
func createModel(eng engine.Engine, value, language, fallback string) (engine.Model, error) {
	return eng.CreateModel(value, or(language, fallback))
}

// createModelPair builds both sides of a diff. Nothing is left behind if
// either side fails.
func createModelPair(eng engine.Engine, p DiffProps) (engine.DiffModel, error) {
	original, err := createModel(eng, p.Original, p.OriginalLanguage, p.Language)
	if err != nil {
		return engine.DiffModel{}, fmt.Errorf("original model: %w", err)
	}
	modified, err := createModel(eng, p.Modified, p.ModifiedLanguage, p.Language)
	if err != nil {
		original.Dispose()
		return engine.DiffModel{}, fmt.Errorf("modified model: %w", err)
	}
	return engine.DiffModel{Original: original, Modified: modified}, nil
}

// fullReplace is the edit that swaps the whole content of m for value.
func fullReplace(m engine.Model, value string) []engine.EditOperation {
	return []engine.EditOperation{{Range: m.FullRange(), Text: value}}
}
