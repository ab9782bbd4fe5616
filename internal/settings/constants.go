package settings

import "time"

// Storage keys and tuning defaults for the entitlement subsystem.
const (
	// PremiumStatusKeyPrefix prefixes the per-creator subscription record key.
	PremiumStatusKeyPrefix = "premium_status:"
	// IdeasUsedKeyPrefix prefixes the per-creator daily usage record key.
	IdeasUsedKeyPrefix = "ideas_used:"
	// SavedIdeasKeyPrefix prefixes the per-creator saved ideas gallery key.
	SavedIdeasKeyPrefix = "saved_ideas:"
	// SecurityStateKey stores the feature-flag gate state.
	SecurityStateKey = "security_state"

	// AnomalyThreshold is the number of reported anomalies that trips the global lock.
	AnomalyThreshold = 3
	// DefaultModulePollInterval controls how often the module snapshot is refreshed.
	DefaultModulePollInterval = 5 * time.Second
	// DefaultStoreTimeout bounds every key-value store call.
	DefaultStoreTimeout = 5 * time.Second

	// DefaultGenerateCount is how many ideas a generation request asks for.
	DefaultGenerateCount = 3
	// MaxGenerateCount caps how many ideas a single request may ask for.
	MaxGenerateCount = 10
)
