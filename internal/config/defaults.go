package config

import (
	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// DefaultSiteTitle is used when site.title is empty.
const DefaultSiteTitle = "Neighborly Wiki"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultSiteTitle
	}
	return nil
}

type generationDefaults struct{}

func (generationDefaults) Domain() string { return "generation" }

func (generationDefaults) ApplyDefaults(cfg *Config) error {
	policy, err := NormalizeOnErrorPolicy(string(cfg.Generation.OnError))
	if err != nil {
		return err
	}
	cfg.Generation.OnError = policy
	return nil
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

var defaultAppliers = []DefaultApplier{
	siteDefaults{},
	generationDefaults{},
	loggingDefaults{},
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").
				Fatal().
				WithContext("domain", applier.Domain()).
				Build()
		}
	}
	return nil
}
