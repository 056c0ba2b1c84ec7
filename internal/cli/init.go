package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sver/sver/internal/pipeline"
	"github.com/sver/sver/internal/subtree"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Generate an empty sver.toml for a subtree",
	Long: `Write a stub sver.toml into the target subtree. Reports whether the file
was generated, already committed, or present on disk but untracked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
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
	status, err := ws.InitConfig()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: path:%q\n",
		subtree.ConfigFileName, status, ws.TargetPath())
	return err
}
