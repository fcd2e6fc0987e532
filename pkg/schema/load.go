package schema

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads and decodes the schema file at path with the first parser that
// supports its extension. Without parsers, DefaultParsers are used.
func Load(ctx context.Context, path string, parsers ...Parser) (Document, error) {
	if len(parsers) == 0 {
		parsers = DefaultParsers()
	}

	ext := filepath.Ext(path)
	var parser Parser
	for _, p := range parsers {
		if p.SupportsFileExtension(ext) {
			parser = p
			break
		}
	}
	if parser == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}

	doc, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Supported reports whether any of the parsers handles the file at path.
func Supported(path string, parsers ...Parser) bool {
	if len(parsers) == 0 {
		parsers = DefaultParsers()
	}
	ext := filepath.Ext(path)
	for _, p := range parsers {
		if p.SupportsFileExtension(ext) {
			return true
		}
	}
	return false
}

// DetectDialect picks the dialect of a document: the DialectKey value when
// present, DialectJQValidation for files named *.jq.json or *.jq.yaml, and
// DialectJSONSchema otherwise.
func DetectDialect(path string, doc Document) string {
	if d, ok := doc[DialectKey].(string); ok && d != "" {
		return d
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(filepath.Ext(base), ".jq") {
		return DialectJQValidation
	}
	return DialectJSONSchema
}

// FormName derives a form name from a schema file path: the base name with
// the format and dialect extensions removed ("person.jq.yaml" → "person").
func FormName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if strings.EqualFold(filepath.Ext(name), ".jq") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
