package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/sver/sver/internal/config"
	"github.com/sver/sver/internal/pipeline"
	"github.com/sver/sver/internal/version"
)

var calcCmd = &cobra.Command{
	Use:   "calc [paths...]",
	Short: "Calculate the version of target subtrees",
	Long: `Calculate the content-addressed version of one or more target subtrees.
With no arguments the current directory is used.`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringP("output", "o", config.OutputVersionOnly, "result format: version-only, toml, json")
	calcCmd.Flags().StringP("length", "l", config.LengthShort, "version length: short, long")
	rootCmd.AddCommand(calcCmd)

	calcCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputVersionOnly, config.OutputTOML, config.OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	calcCmd.RegisterFlagCompletionFunc("length", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.LengthShort, config.LengthLong}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runCalc(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	versions := make([]version.Version, 0, len(paths))
	for _, path := range paths {
		ws, err := pipeline.Open(path, opts.Profile)
		if err != nil {
			return err
		}
		v, err := ws.CalcVersion()
		if err != nil {
			return err
		}
		versions = append(versions, *v)
	}

	return renderVersions(cmd.OutOrStdout(), versions, opts)
}

// renderVersions prints the calculated versions in the requested format.
// Short length truncates every digest before rendering, so all formats agree
// on what a short version is.
func renderVersions(w io.Writer, versions []version.Version, opts *config.Options) error {
	if opts.Length == config.LengthShort {
		for i := range versions {
			versions[i].Version = versions[i].Short()
		}
	}

	switch opts.Output {
	case config.OutputVersionOnly:
		for _, v := range versions {
			if _, err := fmt.Fprintln(w, v.Version); err != nil {
				return err
			}
		}
		return nil
	case config.OutputTOML:
		doc := struct {
			Versions []version.Version `toml:"versions"`
		}{Versions: versions}
		return toml.NewEncoder(w).Encode(doc)
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	default:
		return fmt.Errorf("invalid output format %q", opts.Output)
	}
}
