package codec

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps names, aliases and UIDs to codecs. Names and aliases are
// matched without regard to case; UIDs exactly.
type Registry struct {
	mu     sync.RWMutex
	byKey  map[string]Codec
	byName map[string]Codec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]Codec),
		byName: make(map[string]Codec),
	}
}

var defaultRegistry = NewRegistry()

// Register adds codec to the default registry.
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get looks up a codec in the default registry.
func Get(key string) (Codec, error) {
	return defaultRegistry.Get(key)
}

// List returns the codecs of the default registry.
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds codec under its name, its aliases and its UID. A later
// codec with the same name replaces the earlier one everywhere.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(codec.Name())
	if old, ok := r.byName[name]; ok {
		for k, c := range r.byKey {
			if c == old {
				delete(r.byKey, k)
			}
		}
	}

	r.byName[name] = codec
	r.byKey[name] = codec
	r.byKey[codec.UID()] = codec
	if a, ok := codec.(Aliaser); ok {
		for _, alias := range a.Aliases() {
			r.byKey[strings.ToLower(alias)] = codec
		}
	}
}

// Get returns the codec registered under key, a name, alias or UID.
func (r *Registry) Get(key string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if codec, ok := r.byKey[key]; ok {
		return codec, nil
	}
	if codec, ok := r.byKey[strings.ToLower(key)]; ok {
		return codec, nil
	}
	return nil, ErrCodecNotFound
}

// List returns every registered codec once, sorted by name.
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, 0, len(r.byName))
	for _, codec := range r.byName {
		codecs = append(codecs, codec)
	}
	sort.Slice(codecs, func(i, j int) bool { return codecs[i].Name() < codecs[j].Name() })
	return codecs
}
