package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagiedev/flashmcp-go/internal/registry"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "FLASHMCP_"

// Settings configures a server.
type Settings struct {
	// Name is the server name reported during initialization.
	Name string

	// Debug enables debug logging regardless of LogLevel.
	Debug bool

	// LogLevel is one of DEBUG, INFO, WARNING, ERROR or CRITICAL.
	LogLevel string

	// Host and Port are the listen address used by ServeHTTP.
	Host string
	Port int

	// WarnOnDuplicate* log a warning when an entity is registered twice.
	// When false the duplicate is ignored silently.
	WarnOnDuplicateTools     bool
	WarnOnDuplicateResources bool
	WarnOnDuplicatePrompts   bool

	// DuplicateBehavior, when set, overrides the WarnOnDuplicate* flags for
	// every entity kind.
	DuplicateBehavior registry.DuplicateBehavior
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Name:                     "FlashMCP",
		LogLevel:                 "INFO",
		Host:                     "127.0.0.1",
		Port:                     8000,
		WarnOnDuplicateTools:     true,
		WarnOnDuplicateResources: true,
		WarnOnDuplicatePrompts:   true,
	}
}

// Address returns the HTTP listen address.
func (s Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ToolDuplicates returns the duplicate behavior for tools.
func (s Settings) ToolDuplicates() registry.DuplicateBehavior {
	return s.duplicates(s.WarnOnDuplicateTools)
}

// ResourceDuplicates returns the duplicate behavior for resources and
// templates.
func (s Settings) ResourceDuplicates() registry.DuplicateBehavior {
	return s.duplicates(s.WarnOnDuplicateResources)
}

// PromptDuplicates returns the duplicate behavior for prompts.
func (s Settings) PromptDuplicates() registry.DuplicateBehavior {
	return s.duplicates(s.WarnOnDuplicatePrompts)
}

func (s Settings) duplicates(warn bool) registry.DuplicateBehavior {
	if s.DuplicateBehavior != "" {
		return s.DuplicateBehavior
	}

	return registry.BehaviorFor(warn)
}

// FromEnv overlays FLASHMCP_* variables found by lookup onto base.
// Pass os.LookupEnv to read the process environment.
func FromEnv(base Settings, lookup func(string) (string, bool)) (Settings, error) {
	s := base

	if v, ok := lookup(EnvPrefix + "NAME"); ok {
		s.Name = v
	}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		s.LogLevel = strings.ToUpper(v)
	}

	if v, ok := lookup(EnvPrefix + "HOST"); ok {
		s.Host = v
	}

	if v, ok := lookup(EnvPrefix + "PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return base, fmt.Errorf("invalid %sPORT %q", EnvPrefix, v)
		}

		s.Port = port
	}

	if v, ok := lookup(EnvPrefix + "DUPLICATE_BEHAVIOR"); ok {
		behavior := registry.DuplicateBehavior(strings.ToLower(v))
		if !behavior.Valid() {
			return base, fmt.Errorf("invalid %sDUPLICATE_BEHAVIOR %q", EnvPrefix, v)
		}

		s.DuplicateBehavior = behavior
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"DEBUG", &s.Debug},
		{"WARN_ON_DUPLICATE_TOOLS", &s.WarnOnDuplicateTools},
		{"WARN_ON_DUPLICATE_RESOURCES", &s.WarnOnDuplicateResources},
		{"WARN_ON_DUPLICATE_PROMPTS", &s.WarnOnDuplicatePrompts},
	}

	for _, b := range bools {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}

		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return base, fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, b.name, v, err)
		}

		*b.dst = parsed
	}

	return s, nil
}
