package config

import (
	"sync/atomic"

	"product_estimator/internal/usecase/interfaces"
)

// FeatureSwitches is the runtime view of the feature flags. Values can be
// flipped while the service runs.
type FeatureSwitches struct {
	suggestions  atomic.Bool
	customerSync atomic.Bool
}

var _ interfaces.IFeatureSwitches = (*FeatureSwitches)(nil)

func NewFeatureSwitches(f FeatureConfig) *FeatureSwitches {
	s := &FeatureSwitches{}
	s.suggestions.Store(f.Suggestions)
	s.customerSync.Store(f.CustomerDetailsSync)
	return s
}

func (s *FeatureSwitches) SuggestionsEnabled() bool         { return s.suggestions.Load() }
func (s *FeatureSwitches) CustomerDetailsSyncEnabled() bool { return s.customerSync.Load() }

func (s *FeatureSwitches) SetSuggestionsEnabled(v bool)         { s.suggestions.Store(v) }
func (s *FeatureSwitches) SetCustomerDetailsSyncEnabled(v bool) { s.customerSync.Store(v) }
