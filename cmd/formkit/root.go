package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/formapi"
	"github.com/dmitrymomot/formkit/pkg/jqvalidation"
	"github.com/dmitrymomot/formkit/pkg/jsonschema"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// errInvalidData makes the process exit with status 1 without printing an
// error: the violations have been printed already.
var errInvalidData = errors.New("document is invalid")

type app struct {
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger

	logLevel  string
	logFormat string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, log: logger.Discard()}

	root := &cobra.Command{
		Use:           "formkit",
		Short:         "Schema driven validation of nested form data",
		Long:          `formkit compiles JSON-Schema-like or jQuery-validation form schemas into rule trees and validates documents against them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(a.logLevel, a.logFormat, errOut)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newValidateCmd(a),
		newDefaultsCmd(a),
		newInspectCmd(a),
		newServeCmd(a),
	)
	return root
}

func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	f := logger.Format(strings.ToLower(format))
	if f != logger.FormatJSON && f != logger.FormatText {
		return nil, fmt.Errorf("invalid --log-format %q", format)
	}
	return logger.New(
		logger.WithLevel(l),
		logger.WithFormat(f),
		logger.WithOutput(w),
		logger.WithService("formkit", version),
		logger.WithContextExtractors(formapi.RequestIDExtractor()),
	), nil
}

// schemaRegistry returns both dialect factories sharing one check registry.
// A nil lookup leaves the "lookup" check unregistered.
func schemaRegistry(lookup validator.Lookup) *schema.Registry {
	var opts []validator.Option
	if lookup != nil {
		opts = append(opts, validator.WithLookup(lookup))
	}
	checks := validator.NewRegistry(opts...)
	return schema.NewRegistry(
		jsonschema.New(jsonschema.WithRegistry(checks)),
		jqvalidation.New(jqvalidation.WithRegistry(checks)),
	)
}

// schemaFlags are shared by the commands that compile one schema file.
type schemaFlags struct {
	path    string
	dialect string
	name    string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "schema", "s", "", "schema file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", "schema dialect: jsonschema or jqvalidation (detected when empty)")
	cmd.Flags().StringVar(&f.name, "rule", "", "name of the root rule (defaults to the file name)")
	_ = cmd.MarkFlagRequired("schema")
}

func (f *schemaFlags) compile(ctx context.Context, a *app, lookup validator.Lookup) (*rule.Rule, error) {
	r, dialect, err := schemaRegistry(lookup).CompileFile(ctx, f.path, f.dialect, f.name)
	if err != nil {
		return nil, err
	}
	a.log.DebugContext(ctx, "schema compiled", logger.Rule(r.Name()), logger.Dialect(dialect))
	return r, nil
}
