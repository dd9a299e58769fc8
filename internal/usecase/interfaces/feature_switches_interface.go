package interfaces

// IFeatureSwitches exposes the runtime feature flags consulted by the
// repository and the orchestration use case.
type IFeatureSwitches interface {
	SuggestionsEnabled() bool
	CustomerDetailsSyncEnabled() bool
}
