package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sver/sver/internal/pipeline"
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the resolved source set of a target subtree",
	Long: `List every file contributing to the target subtree's version, one path
per line, in hashing order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	ws, err := pipeline.Open(path, opts.Profile)
	if err != nil {
		return err
	}
	sources, err := ws.ListSources()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, source := range sources {
		if _, err := fmt.Fprintln(out, source); err != nil {
			return err
		}
	}
	return nil
}
