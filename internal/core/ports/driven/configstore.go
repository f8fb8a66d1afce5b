package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation matching the file's tables, e.g. "apollo.api_key".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt returns 0 if the key doesn't exist or isn't a number.
	GetInt(key string) int

	// GetFloat returns 0 if the key doesn't exist or isn't a number.
	GetFloat(key string) float64

	// GetBool returns false if the key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice returns nil if the key doesn't exist or isn't a list.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
