package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/buildinfo"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// NewRootCmd builds the s3lens command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "s3lens",
		Short:         "s3lens: interpret S3-style API responses",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable verbose logging to .s3lens/logs/s3lens.log")
	cmd.PersistentFlags().StringVarP(&a.workspaceFlag, "workspace", "w", "", "workspace root (optional; autodetected from s3lens.yaml)")

	cmd.AddCommand(
		initCmd(defaultInitializer()),
		fetchCmd(a),
		inspectCmd(a),
		runCmd(a),
		validateCmd(a),
		kindsCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

func errorLine(err error) string {
	return theme().Fail.Render("error:") + " " + userMessage(err)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
