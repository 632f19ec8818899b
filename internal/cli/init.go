package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/infra/fsworkspace"
	"github.com/aalvaropc/s3lens/internal/ports"
)

func initCmd(initializer ports.WorkspaceInitializer) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create an s3lens workspace (s3lens.yaml, probes/, .gitignore)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return err
			}

			if err := initializer.Init(root, force); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Initialized s3lens workspace in %s\n", root)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "overwrite existing template files")
	return c
}

func defaultInitializer() ports.WorkspaceInitializer {
	return fsworkspace.NewInitializer()
}
