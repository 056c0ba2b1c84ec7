package config

import "os"

// Environment variable names for SVER_ prefixed overrides.
const (
	// EnvProfile selects the configuration profile to resolve under.
	EnvProfile = "SVER_PROFILE"
	// EnvOutput overrides the calc output format.
	EnvOutput = "SVER_OUTPUT"
	// EnvLength overrides the printed version length.
	EnvLength = "SVER_LENGTH"
	// EnvDebug forces debug-level logging when set to "1".
	EnvDebug = "SVER_DEBUG"
	// EnvLogFormat selects the log output format (not an option field).
	EnvLogFormat = "SVER_LOG_FORMAT"
)

// buildEnvMap reads SVER_* environment variables into a flat map suitable
// for a koanf confmap provider. Empty variables are omitted so they do not
// mask lower layers.
func buildEnvMap() map[string]any {
	m := make(map[string]any)

	if v := os.Getenv(EnvProfile); v != "" {
		m["profile"] = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		m["output"] = v
	}
	if v := os.Getenv(EnvLength); v != "" {
		m["length"] = v
	}

	return m
}
