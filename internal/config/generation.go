package config

import (
	"git.home.luguber.info/inful/simwiki/internal/foundation/normalization"
)

// OnErrorPolicy decides what a run does when one entity's page fails.
type OnErrorPolicy string

const (
	// OnErrorAbort propagates the first page failure and stops the run.
	OnErrorAbort OnErrorPolicy = "abort"
	// OnErrorSkip logs the failure, keeps generating, and fails the run at the end.
	OnErrorSkip OnErrorPolicy = "skip"
)

var onErrorNormalizer = normalization.NewNormalizer(map[string]OnErrorPolicy{
	"abort": OnErrorAbort,
	"skip":  OnErrorSkip,
}, OnErrorAbort)

// NormalizeOnErrorPolicy maps raw to a policy; empty means abort.
func NormalizeOnErrorPolicy(raw string) (OnErrorPolicy, error) {
	return onErrorNormalizer.NormalizeWithError(raw)
}
