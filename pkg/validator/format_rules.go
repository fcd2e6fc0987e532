package validator

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

var (
	// Phone number regex - international format with optional country code
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
)

// Email validates an address the way web forms expect: RFC 5322 parsing plus
// a dotted domain. Empty values pass; combine with required.
var Email = Definition{
	Name:    "email",
	Prepare: prepareBool,
	Check: CheckFunc(func(value any, cfg Config) bool {
		if !enabled(cfg) || IsEmpty(value) {
			return true
		}
		s, ok := Text(value)
		return ok && isEmail(s)
	}),
	Message:        func(Config) string { return "must be a valid email address" },
	TranslationKey: "validation.email",
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// Reject display-name forms such as "John <john@example.com>"
	if addr.Address != strings.TrimSpace(value) {
		return false
	}

	localPart, domain, found := strings.Cut(addr.Address, "@")
	if !found || localPart == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}

var URL = Definition{
	Name:    "url",
	Prepare: prepareBool,
	Check: CheckFunc(func(value any, cfg Config) bool {
		if !enabled(cfg) || IsEmpty(value) {
			return true
		}
		s, ok := Text(value)
		if !ok {
			return false
		}
		u, err := url.ParseRequestURI(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	}),
	Message:        func(Config) string { return "must be a valid URL" },
	TranslationKey: "validation.url",
}

var Phone = regexDefinition("phone", phoneRegex, "must be a valid phone number", "validation.phone")

var Alphanumeric = regexDefinition("alphanumeric", alphanumericRegex, "must contain only letters and numbers", "validation.alphanumeric")

var Digits = regexDefinition("digits", digitsRegex, "must contain only digits", "validation.numeric")

// NumberFormat accepts any decimal number, like jQuery Validation's number.
var NumberFormat = Definition{
	Name:    "number",
	Prepare: prepareBool,
	Check: CheckFunc(func(value any, cfg Config) bool {
		if !enabled(cfg) || IsEmpty(value) {
			return true
		}
		_, ok := Number(value)
		return ok
	}),
	Message:        func(Config) string { return "must be a number" },
	TranslationKey: "validation.number",
}

func regexDefinition(name string, re *regexp.Regexp, message, key string) Definition {
	return Definition{
		Name:    name,
		Prepare: prepareBool,
		Check: CheckFunc(func(value any, cfg Config) bool {
			if !enabled(cfg) || IsEmpty(value) {
				return true
			}
			s, ok := Text(value)
			return ok && re.MatchString(s)
		}),
		Message:        func(Config) string { return message },
		TranslationKey: key,
	}
}

// Format dispatches the JSON Schema "format" keyword to the matching check.
var Format = Definition{
	Name:     "format",
	Prepare:  prepareFormat,
	ParamKey: "format",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		inner := cfg.Compiled().(Binding)
		ok, _ := inner.Run(context.Background(), value).Await()
		return ok
	}),
	Message: func(cfg Config) string {
		return cfg.Compiled().(Binding).Message()
	},
	TranslationKey: "validation.format",
}

var formats = map[string]Definition{
	"email":        Email,
	"uri":          URL,
	"url":          URL,
	"uuid":         UUID,
	"phone":        Phone,
	"alphanumeric": Alphanumeric,
}

func prepareFormat(raw any) (Config, error) {
	name, err := NewConfig(raw).Text()
	if err != nil {
		return Config{}, err
	}
	def, ok := formats[name]
	if !ok {
		return Config{}, fmt.Errorf("unsupported format %q", name)
	}
	inner, err := Bind(def, true)
	if err != nil {
		return Config{}, err
	}
	return NewConfig(name).WithCompiled(inner), nil
}
