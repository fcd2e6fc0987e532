package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Translator renders validation messages in several languages. Templates use
// named placeholders, "%{max}", filled from failure params.
//
// Translations are keyed by language, then by translation key. Keys may be
// flat ("validation.required") or nested maps traversed by the dot-separated
// key. It is safe for concurrent use; translations are read-only after
// construction.
type Translator struct {
	translations map[string]map[string]any
	langs        []string
	defaultLang  string
	logger       *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when negotiation finds no match.
// Defaults to "en".
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithLogger logs missing translations at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTranslator builds a Translator from language → translations maps.
func NewTranslator(translations map[string]map[string]any, opts ...Option) (*Translator, error) {
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}

	t := &Translator{
		translations: make(map[string]map[string]any, len(translations)),
		defaultLang:  "en",
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	for lang, messages := range translations {
		if lang == "" || messages == nil {
			return nil, fmt.Errorf("%w: language %q has no messages", ErrInvalidTranslations, lang)
		}
		t.translations[strings.ToLower(lang)] = messages
	}
	if _, ok := t.translations[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefaultLangNotLoaded, t.defaultLang)
	}

	t.langs = make([]string, 0, len(t.translations))
	for lang := range t.translations {
		t.langs = append(t.langs, lang)
	}
	sort.Strings(t.langs)
	return t, nil
}

// Load reads translations from a JSON or YAML file whose top-level keys are
// language codes:
//
//	cs:
//	  validation:
//	    required: "je povinné"
//	    max_length: "může mít nejvýše %{max} znaků"
func Load(ctx context.Context, path string, opts ...Option) (*Translator, error) {
	doc, err := schema.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	translations := make(map[string]map[string]any, len(doc))
	for lang, raw := range doc {
		messages, ok := schema.Mapping(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s: language %q: expected a mapping, got %T", ErrInvalidTranslations, path, lang, raw)
		}
		translations[lang] = messages
	}
	return NewTranslator(translations, opts...)
}

// Languages returns the loaded language codes, sorted.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.langs...)
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// T renders key in lang. It reports false when lang or key is unknown.
func (t *Translator) T(lang, key string, params map[string]any) (string, bool) {
	messages, ok := t.translations[strings.ToLower(lang)]
	if !ok {
		t.logger.Debug("language not supported", slog.String("lang", lang), slog.String("key", key))
		return "", false
	}

	tmpl, ok := lookupKey(messages, key)
	if !ok {
		t.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
		return "", false
	}
	return substitute(tmpl, params), true
}

// lookupKey tries the flat key first, then walks nested maps.
func lookupKey(m map[string]any, key string) (string, bool) {
	if v, ok := m[key].(string); ok {
		return v, true
	}

	current := m
	parts := strings.Split(key, ".")
	for i, part := range parts {
		next, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := next.(string)
			return s, ok
		}
		if current, ok = schema.Mapping(next); !ok {
			return "", false
		}
	}
	return "", false
}

var paramPattern = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} with params[name]. Unknown placeholders are kept.
func substitute(tmpl string, params map[string]any) string {
	if len(params) == 0 {
		return tmpl
	}
	return paramPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		v, ok := params[match[2:len(match)-1]]
		if !ok {
			return match
		}
		return formatParam(v)
	})
}

func formatParam(v any) string {
	switch val := v.(type) {
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatParam(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprint(val)
	}
}
