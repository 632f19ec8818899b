package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/usecase"
)

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List endpoint kinds and how each is interpreted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tMETHOD\tSERIALIZER\tRESULT")
			for _, k := range usecase.Kinds() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Kind, k.Kind.DefaultMethod(), k.Serializer, k.Result)
			}
			return tw.Flush()
		},
	}
}
