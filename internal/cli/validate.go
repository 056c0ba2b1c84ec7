package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sver/sver/internal/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate all sver.toml files in the repository",
	Long: `Check every tracked sver.toml: each declared dependency and exclude must
resolve to at least one file in the index. Exits non-zero when any
configuration is invalid.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	ws, err := pipeline.Open(".", opts.Profile)
	if err != nil {
		return err
	}
	results, err := ws.Validate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, result := range results {
		if !result.Valid() {
			invalid++
		}
		if _, err := fmt.Fprintln(out, result); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return pipeline.NewError(fmt.Sprintf("%d invalid configuration(s)", invalid), nil)
	}
	return nil
}
