package config

const (
	defaultConfigPath        = "~/.config/durazubs/config.toml"
	projectConfigFile        = "durazubs.toml"
	dotEnvFile               = ".env"
	defaultStateDir          = "~/.local/share/durazubs"
	defaultLogDir            = "~/.local/share/durazubs/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultToleranceSeconds  = 1.0
	defaultHeaderSource      = HeaderFromText
	defaultTrailingBlocks    = TrailingAppend
	defaultTranslation       = BackendNone
	defaultChunkSize         = 40
	defaultTargetLanguage    = "Spanish"
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://github.com/durazubs/durazubs"
	defaultLLMTitle          = "durazubs"
	defaultLLMTimeoutSeconds = 60
	defaultLLMBatchSize      = 40
)

// Accepted values for sync.header_source.
const (
	HeaderFromTiming = "timing"
	HeaderFromText   = "text"
)

// Accepted values for sync.trailing_blocks.
const (
	TrailingAppend = "append"
	TrailingDrop   = "drop"
)

// Accepted values for translation.backend.
const (
	BackendNone = "none"
	BackendFile = "file"
	BackendLLM  = "llm"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Sync: Sync{
			ToleranceSeconds: defaultToleranceSeconds,
			HeaderSource:     defaultHeaderSource,
			TrailingBlocks:   defaultTrailingBlocks,
		},
		Translation: Translation{
			Backend:        defaultTranslation,
			ChunkSize:      defaultChunkSize,
			TargetLanguage: defaultTargetLanguage,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			BatchSize:      defaultLLMBatchSize,
		},
		History: History{
			Enabled: true,
		},
	}
}
