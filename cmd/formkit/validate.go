package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		sf         schemaFlags
		flat       bool
		lookupFile string
		timeout    time.Duration
		messages   string
		lang       string
	)

	cmd := &cobra.Command{
		Use:   "validate [DATA_FILE]",
		Short: "Validate a document against a schema",
		Long: `Validates a JSON or YAML document against a schema and prints the result tree.
The document is read from stdin when DATA_FILE is omitted or "-".
The command exits with status 1 when the document is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var lookup validator.Lookup
			if lookupFile != "" {
				l, err := loadStaticLookup(ctx, lookupFile)
				if err != nil {
					return err
				}
				lookup = l
			}

			r, err := sf.compile(ctx, a, lookup)
			if err != nil {
				return err
			}

			data, err := readData(ctx, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			eng := engine.New(engine.WithLogger(a.log), engine.WithCheckTimeout(timeout))
			res := eng.Validate(ctx, r, data)

			if messages != "" {
				tr, err := i18n.Load(ctx, messages, i18n.WithLogger(a.log))
				if err != nil {
					return fmt.Errorf("messages file: %w", err)
				}
				if lang == "" {
					lang = tr.DefaultLanguage()
				}
				tr.Localize(res, lang)
			}

			if flat {
				for _, v := range res.Flatten() {
					path := v.Path
					if path == "" {
						path = "."
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", path, v.Check, v.Message)
				}
				if !res.HasErrors {
					fmt.Fprintln(cmd.OutOrStdout(), "valid")
				}
			} else if err := writeOutput(cmd.OutOrStdout(), outputJSON, res); err != nil {
				return err
			}

			if res.HasErrors {
				return errInvalidData
			}
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().BoolVar(&flat, "flat", false, "print one failed check per line instead of the result tree")
	cmd.Flags().StringVar(&lookupFile, "lookup", "", "JSON or YAML file with lookup sets")
	cmd.Flags().StringVar(&messages, "messages", "", "JSON or YAML file with translated failure messages")
	cmd.Flags().StringVar(&lang, "lang", "", "language of failure messages (requires --messages)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for a single asynchronous check")
	return cmd
}

// readData decodes the document to validate. Empty input and null decode to
// nil, and any top-level value is accepted: the engine treats data that is
// not a mapping as absent.
func readData(ctx context.Context, stdin io.Reader, args []string) (any, error) {
	var (
		content []byte
		err     error
		source  = "stdin"
		isYAML  bool
	)
	if len(args) == 1 && args[0] != "-" {
		source = args[0]
		isYAML = schema.NewYAMLParser().SupportsFileExtension(filepath.Ext(source))
		content, err = os.ReadFile(source)
	} else {
		content, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	var data any
	if isYAML {
		err = yaml.Unmarshal(content, &data)
	} else {
		err = json.Unmarshal(content, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return data, nil
}
