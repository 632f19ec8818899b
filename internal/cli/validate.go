package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/infra/yamlprobes"
	"github.com/aalvaropc/s3lens/internal/usecase"
)

func validateCmd(a *app) *cobra.Command {
	var envName string

	c := &cobra.Command{
		Use:   "validate <probes.yaml>",
		Short: "Validate a probe file (no HTTP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := a.open()
			defer done()
			if err != nil {
				return err
			}

			path, err := resolveFile(a.root, probesDir, args[0])
			if err != nil {
				return err
			}

			env, err := loadEnvironment(a.root, envName)
			if err != nil {
				return err
			}

			set, err := usecase.NewValidateProbes(yamlprobes.NewLoader()).Execute(cmd.Context(), path, env)
			if err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "OK: %s (%d probes)\n", set.Name, len(set.Probes))
			return nil
		},
	}

	c.Flags().StringVarP(&envName, "env", "e", "", "environment name or path seeding {{vars}}")
	return c
}
