package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		sf     schemaFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the compiled rule tree of a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Inspection never runs checks, so any lookup set is accepted.
			r, err := sf.compile(cmd.Context(), a, validator.NewStaticLookup(nil))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, rule.Describe(r))
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	return cmd
}
