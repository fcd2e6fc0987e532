package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes schema files of one format.
type Parser interface {
	Parse(ctx context.Context, content []byte) (Document, error)

	// SupportsFileExtension accepts the extension with or without the dot.
	SupportsFileExtension(ext string) bool
}

// JSONParser implements the Parser interface for JSON files.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrFailedToParse)
	}
	return doc, nil
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// YAMLParser implements the Parser interface for YAML files.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrFailedToParse)
	}
	return doc, nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// DefaultParsers returns the JSON and YAML parsers.
func DefaultParsers() []Parser {
	return []Parser{NewJSONParser(), NewYAMLParser()}
}
