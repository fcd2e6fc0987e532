package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/defaults"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func newDefaultsCmd(a *app) *cobra.Command {
	var (
		sf     schemaFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the initial data instance of a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := sf.compile(cmd.Context(), a, validator.NewStaticLookup(nil))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, defaults.Build(r))
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	return cmd
}
