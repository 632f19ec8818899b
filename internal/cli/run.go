package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/infra/capturestore"
	"github.com/aalvaropc/s3lens/internal/infra/httprunner"
	"github.com/aalvaropc/s3lens/internal/infra/logger"
	"github.com/aalvaropc/s3lens/internal/infra/metrics"
	"github.com/aalvaropc/s3lens/internal/infra/yamlenv"
	"github.com/aalvaropc/s3lens/internal/infra/yamlprobes"
	"github.com/aalvaropc/s3lens/internal/ports"
	"github.com/aalvaropc/s3lens/internal/usecase"
)

const probesDir = "probes"

func runCmd(a *app) *cobra.Command {
	var noSave bool
	var format string
	var metricsFile string
	var envName string

	c := &cobra.Command{
		Use:   "run <probes.yaml>",
		Short: "Run a probe file and check every expectation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

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

			var store ports.ArtifactStore
			if !noSave {
				store = capturestore.NewJSONStore(a.root, a.cfg, capturestore.WithIndex(true))
			}

			m := metrics.Null()
			if metricsFile != "" {
				m = metrics.New()
			}

			uc := usecase.NewRunProbes(
				yamlprobes.NewLoader(),
				httprunner.NewFromConfig(a.cfg.Transport),
				store,
				usecase.WithRecorder(m),
				usecase.WithLogger(logger.L()),
				usecase.WithEnvironment(env),
			)

			run, _, err := uc.Execute(cmd.Context(), path)
			if err != nil {
				// Print what ran before the failure.
				if len(run.Results) > 0 {
					_ = printRun(out(cmd), run, format)
				}
				return err
			}

			if err := printRun(out(cmd), run, format); err != nil {
				return err
			}
			if err := m.WriteTextfile(metricsFile); err != nil {
				return err
			}

			if fails := countFailures(run); fails > 0 {
				return fmt.Errorf("run failed (%d failed probe(s))", fails)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&noSave, "no-save", false, "do not save the run report under runs/")
	c.Flags().StringVar(&format, "format", formatPretty, "output format: pretty|json")
	c.Flags().StringVarP(&envName, "env", "e", "", "environment name or path seeding {{vars}} (env/<name>.yaml)")
	c.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format to this path")
	return c
}

// loadEnvironment returns an empty environment when name is empty.
func loadEnvironment(root, name string) (domain.Environment, error) {
	if name == "" {
		return domain.Environment{}, nil
	}
	return yamlenv.NewLoader(root).LoadEnvironment(name)
}
