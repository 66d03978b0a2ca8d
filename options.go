package flashmcp

import (
	"io"
	"log/slog"

	"github.com/wagiedev/flashmcp-go/internal/config"
	"github.com/wagiedev/flashmcp-go/internal/registry"
)

// Settings configures a server. See Default and SettingsFromEnv.
type Settings = config.Settings

// DuplicateBehavior controls what happens when an entity is registered
// under an identity that is already taken.
type DuplicateBehavior = registry.DuplicateBehavior

// Duplicate behaviors.
const (
	DuplicateWarn    = registry.DuplicateWarn
	DuplicateIgnore  = registry.DuplicateIgnore
	DuplicateReject  = registry.DuplicateError
	DuplicateReplace = registry.DuplicateReplace
)

// DefaultSettings returns the default server settings.
func DefaultSettings() Settings {
	return config.Default()
}

// SettingsFromEnv overlays FLASHMCP_* environment variables found by lookup
// onto the default settings. Pass os.LookupEnv to read the process
// environment.
func SettingsFromEnv(lookup func(string) (string, bool)) (Settings, error) {
	return config.FromEnv(config.Default(), lookup)
}

// Options configures a Server using the functional options pattern.
type Options struct {
	// Logger is the slog logger for server output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// LogOutput, when set and Logger is nil, receives text logs at the
	// level named by Settings.LogLevel (DEBUG when Settings.Debug is set).
	LogOutput io.Writer

	// Settings holds the server settings. Defaults to DefaultSettings.
	Settings *Settings

	// Version is the server version reported during initialization.
	Version string

	// Instructions is sent to clients during initialization.
	Instructions string
}

// Option configures Options.
type Option func(*Options)

func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithLogOutput builds a text logger writing to w from the configured log
// level. It has no effect when WithLogger is also given.
func WithLogOutput(w io.Writer) Option {
	return func(o *Options) {
		o.LogOutput = w
	}
}

// WithSettings replaces the default settings.
func WithSettings(settings Settings) Option {
	return func(o *Options) {
		o.Settings = &settings
	}
}

// WithVersion sets the server version reported during initialization.
func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

// WithInstructions sets the instructions sent to clients during
// initialization.
func WithInstructions(instructions string) Option {
	return func(o *Options) {
		o.Instructions = instructions
	}
}

// ===== Registration Policy =====

// WithDuplicateBehavior sets the duplicate policy for every entity kind,
// overriding the WarnOnDuplicate* settings.
func WithDuplicateBehavior(behavior DuplicateBehavior) Option {
	return func(o *Options) {
		if o.Settings == nil {
			s := config.Default()
			o.Settings = &s
		}

		o.Settings.DuplicateBehavior = behavior
	}
}
