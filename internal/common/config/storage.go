package config

type (
	// StorageConfig selects the backing store for CRM data
	StorageConfig struct {
		Type     string             `yaml:"type"`     // db or local
		Database DatabaseConfig     `yaml:"database"` // database configuration for db type
		Local    LocalStorageConfig `yaml:"local"`    // local configuration for local type
	}

	// LocalStorageConfig configures the single-file JSON store used
	// for offline deployments without a database
	LocalStorageConfig struct {
		Path string `yaml:"path"` // path to the JSON state file
	}
)
