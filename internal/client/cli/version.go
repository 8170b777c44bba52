package cli

import (
	"github.com/spf13/cobra"
)

func newVersionCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOffline: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			e.io.Println("TodoKeeper Client")
			e.io.Printf("Version:    %s\n", e.info.Version)
			e.io.Printf("Build Date: %s\n", e.info.BuildDate)
			e.io.Printf("Git Commit: %s\n", e.info.GitCommit)
		},
	}
}
