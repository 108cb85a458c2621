package config

import "time"

// DefaultBaseURL is the backend endpoint used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 5
	}
	if cfg.Logs.ListLimit == 0 {
		cfg.Logs.ListLimit = 10
	}
	if cfg.Logs.ResetDelay == 0 {
		cfg.Logs.ResetDelay = 3 * time.Second
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".txt", ".md", ".pdf", ".docx", ".odt", ".rtf", ".xlsx"}
	}
	if cfg.Stub.Host == "" {
		cfg.Stub.Host = "localhost"
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = 8000
	}
}
