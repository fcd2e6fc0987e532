package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Form records the form name under the key "form".
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Rule records the name of the validated rule under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Path records a data path such as "Contacts[1].Email" under the key "path".
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Check records a check name under the key "check".
func Check(name string) slog.Attr {
	return slog.String("check", name)
}

// Dialect records a schema dialect under the key "dialect".
func Dialect(name string) slog.Attr {
	return slog.String("dialect", name)
}

// Outcome records whether a validation passed under the key "outcome".
func Outcome(hasErrors bool) slog.Attr {
	if hasErrors {
		return slog.String("outcome", "invalid")
	}
	return slog.String("outcome", "valid")
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
