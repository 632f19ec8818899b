package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/infra/capturestore"
)

func inspectCmd(a *app) *cobra.Command {
	var ef exchangeFlags

	c := &cobra.Command{
		Use:   "inspect <capture.json>",
		Short: "Interpret a saved exchange offline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(ef.format); err != nil {
				return err
			}
			rules, err := parseExtracts(ef.extracts)
			if err != nil {
				return err
			}

			done, err := a.open()
			defer done()
			if err != nil {
				return err
			}

			path, err := resolveFile(a.root, a.cfg.Paths.CapturesDir, args[0])
			if err != nil {
				return err
			}
			capt, err := capturestore.NewJSONStore(a.root, a.cfg).LoadCapture(path)
			if err != nil {
				return err
			}

			kind := capt.Kind
			if ef.kind != "" {
				if kind, err = parseKind(ef.kind); err != nil {
					return err
				}
			}

			ex := capt.Exchange()
			report, err := interpret(kind, ex, rules)
			if err != nil {
				return err
			}
			report.Capture = path

			if err := printOutcome(out(cmd), report, ef.format); err != nil {
				return err
			}
			return outcomeErr(report.Outcome)
		},
	}

	ef.register(c, false)
	return c
}
