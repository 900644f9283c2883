package app

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// RecipePath is the HCL recipe file to execute.
	RecipePath string
	// ConfigPath is an optional YAML file of static key/value config that
	// recipe args can reference as `config.<name>`.
	ConfigPath string
	// Params holds command-line `--param key=value` overrides, referenced
	// by recipe args as `options.<name>`.
	Params map[string]string
	// LogFormat selects 'text' or 'json' log output.
	LogFormat string
	// LogLevel selects the minimum log level.
	LogLevel string
}
