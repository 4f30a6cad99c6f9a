package config

import (
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	markdown := true
	example := Config{
		Site: SiteConfig{Title: DefaultSiteTitle},
		Generation: GenerationConfig{
			OnError:              OnErrorAbort,
			MarkdownDescriptions: &markdown,
			VerifyLinks:          false,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Metrics: MetricsConfig{Textfile: ""},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
