package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// Output format values accepted by calc --output.
const (
	OutputVersionOnly = "version-only"
	OutputTOML        = "toml"
	OutputJSON        = "json"
)

// Version length values accepted by calc --length.
const (
	LengthShort = "short"
	LengthLong  = "long"
)

// Options holds the resolved invocation options shared across commands.
type Options struct {
	// Profile is the configuration profile applied during resolution.
	Profile string `koanf:"profile"`

	// Output is the calc result format: version-only, toml, or json.
	Output string `koanf:"output"`

	// Length selects how much of the digest calc prints: short or long.
	Length string `koanf:"length"`
}

// ResolveOptions carries the explicit CLI flag overrides into Resolve. Only
// flags the user actually set should be present, so unset flags do not mask
// environment values.
type ResolveOptions struct {
	// Flags maps option names ("profile", "output", "length") to the values
	// given on the command line.
	Flags map[string]any
}

// Resolve runs the three-layer option resolution: built-in defaults, then
// SVER_* environment variables, then CLI flags, highest layer winning per
// key. The result is validated before being returned.
func Resolve(opts ResolveOptions) (*Options, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"profile": "default",
		"output":  OutputVersionOnly,
		"length":  LengthShort,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(confmap.Provider(buildEnvMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flag overrides: %w", err)
		}
	}

	var resolved Options
	if err := k.Unmarshal("", &resolved); err != nil {
		return nil, fmt.Errorf("unmarshaling options: %w", err)
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return &resolved, nil
}

// Validate checks the enumerated option values.
func (o *Options) Validate() error {
	switch o.Output {
	case OutputVersionOnly, OutputTOML, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q (valid: %s, %s, %s)",
			o.Output, OutputVersionOnly, OutputTOML, OutputJSON)
	}
	switch o.Length {
	case LengthShort, LengthLong:
	default:
		return fmt.Errorf("invalid version length %q (valid: %s, %s)",
			o.Length, LengthShort, LengthLong)
	}
	if o.Profile == "" {
		return fmt.Errorf("profile must not be empty")
	}
	return nil
}
