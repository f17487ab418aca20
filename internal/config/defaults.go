package config

// defaultSaveDebounceMs is the default delay for debounced layout saves.
const defaultSaveDebounceMs = 300

// DefaultConfig returns the default configuration values for inkpad.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			SaveDebounceMs: defaultSaveDebounceMs,
		},
		Database: DatabaseConfig{
			Path: "", // resolved to the XDG data dir at load time
		},
		Documents: DocumentsConfig{
			NotesDir: "", // resolved to the XDG data dir at load time
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console", // console or json
		},
	}
}
