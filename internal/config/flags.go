package config

import "github.com/spf13/cobra"

// FlagValues collects the parsed global flag values. It is populated by
// BindFlags and read after flag parsing.
type FlagValues struct {
	Profile string
	Verbose bool
	Quiet   bool
}

// BindFlags registers the global persistent flags on the root command and
// returns the FlagValues that will hold them once parsed.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Profile, "profile", "p", "", "configuration profile (default \"default\", or SVER_PROFILE)")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "only log errors")

	return fv
}

// FlagOverrides converts the set flags of a command into the override map
// consumed by Resolve. Only flags the user changed are included.
func FlagOverrides(cmd *cobra.Command, fv *FlagValues) map[string]any {
	overrides := make(map[string]any)

	if cmd.Flags().Changed("profile") || cmd.Root().PersistentFlags().Changed("profile") {
		overrides["profile"] = fv.Profile
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		overrides["output"] = f.Value.String()
	}
	if f := cmd.Flags().Lookup("length"); f != nil && f.Changed {
		overrides["length"] = f.Value.String()
	}

	return overrides
}
