package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("check", slog.String("name", "email"), slog.Bool("failed", true))
	require.Equal(t, "check", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "name", g[0].Key)
	assert.Equal(t, "failed", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Form("person"), "form", "person"},
		{logger.Rule("Main"), "rule", "Main"},
		{logger.Path("Contacts[1].Email"), "path", "Contacts[1].Email"},
		{logger.Check("email"), "check", "email"},
		{logger.Dialect("jqvalidation"), "dialect", "jqvalidation"},
		{logger.Component("engine"), "component", "engine"},
		{logger.Outcome(true), "outcome", "invalid"},
		{logger.Outcome(false), "outcome", "valid"},
		{logger.Duration(time.Second), "duration", time.Second},
		{logger.RequestID("abc"), "request_id", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}

	assert.True(t, logger.RequestID(nil).Equal(slog.Attr{}))
}
