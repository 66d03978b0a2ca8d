package registry

import (
	"io"
	"log/slog"
	"sync"

	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// DuplicateBehavior controls what Add does when the key is already present.
type DuplicateBehavior string

const (
	// DuplicateWarn keeps the existing entity and logs a warning.
	DuplicateWarn DuplicateBehavior = "warn"
	// DuplicateIgnore keeps the existing entity silently.
	DuplicateIgnore DuplicateBehavior = "ignore"
	// DuplicateError rejects the new entity with an errors.DuplicateError.
	DuplicateError DuplicateBehavior = "error"
	// DuplicateReplace swaps in the new entity at the existing position and logs a warning.
	DuplicateReplace DuplicateBehavior = "replace"
)

// Valid reports whether b is one of the defined behaviors.
func (b DuplicateBehavior) Valid() bool {
	switch b {
	case DuplicateWarn, DuplicateIgnore, DuplicateError, DuplicateReplace:
		return true
	}

	return false
}

// BehaviorFor maps a warn-on-duplicate flag to a DuplicateBehavior.
func BehaviorFor(warnOnDuplicate bool) DuplicateBehavior {
	if warnOnDuplicate {
		return DuplicateWarn
	}

	return DuplicateIgnore
}

// Entity is the capability set a Manager needs from its entries.
type Entity[T any] interface {
	// Key returns the identity of the entity.
	Key() string
	// WithPrefix returns a shallow copy whose identity carries prefix,
	// joined with the delimiter of the entity kind.
	WithPrefix(prefix string) T
}

// Manager is a registry of entities keyed by identity.
type Manager[T Entity[T]] struct {
	kind       errors.Kind
	duplicates DuplicateBehavior
	log        *slog.Logger

	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New creates an empty manager for entities of the given kind.
// A nil logger disables logging.
func New[T Entity[T]](kind errors.Kind, duplicates DuplicateBehavior, log *slog.Logger) *Manager[T] {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if duplicates == "" {
		duplicates = DuplicateWarn
	}

	return &Manager[T]{
		kind:       kind,
		duplicates: duplicates,
		log:        log,
		items:      make(map[string]T, 8),
	}
}

// Kind returns the entity kind held by the manager.
func (m *Manager[T]) Kind() errors.Kind {
	return m.kind
}

// Add registers e under its key and returns the entity that is stored
// afterwards. When the key already exists the result depends on the
// manager's DuplicateBehavior.
func (m *Manager[T]) Add(e T) (T, error) {
	key := e.Key()

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.items[key]
	if !ok {
		m.items[key] = e
		m.order = append(m.order, key)

		return e, nil
	}

	switch m.duplicates {
	case DuplicateIgnore:
		return existing, nil
	case DuplicateError:
		var zero T

		return zero, &errors.DuplicateError{Kind: m.kind, Identity: key}
	case DuplicateReplace:
		m.log.Warn("Replacing existing "+string(m.kind), "key", key)
		m.items[key] = e

		return e, nil
	default:
		m.log.Warn(string(m.kind)+" already exists", "key", key)

		return existing, nil
	}
}

// Get returns the entity stored under key.
func (m *Manager[T]) Get(key string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[key]

	return e, ok
}

// List returns all entities in insertion order.
func (m *Manager[T]) List() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]T, 0, len(m.order))
	for _, key := range m.order {
		result = append(result, m.items[key])
	}

	return result
}

// Len returns the number of registered entities.
func (m *Manager[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.order)
}

// ImportFrom adds a prefixed copy of every entity in other.
// The copy is taken once; later changes to other are not reflected.
// Duplicate keys follow the receiver's DuplicateBehavior, and the first
// rejection stops the import.
func (m *Manager[T]) ImportFrom(other *Manager[T], prefix string) error {
	for _, e := range other.List() {
		if _, err := m.Add(e.WithPrefix(prefix)); err != nil {
			return err
		}
	}

	return nil
}
