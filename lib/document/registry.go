package document

import "sync"

// Registry owns the live documents, keyed by path. It is an explicit object
// created in main and passed by reference to whoever needs it; the replay
// core itself only ever sees a single Buffer per invocation.
type Registry struct {
	mu          sync.Mutex
	documents   map[string]*MemoryBuffer
	defaultText string
}

// NewRegistry creates an empty registry. Documents created on demand start
// with defaultText as their content.
func NewRegistry(defaultText string) *Registry {
	return &Registry{
		documents:   make(map[string]*MemoryBuffer),
		defaultText: defaultText,
	}
}

// GetOrCreate returns the live document at path, creating it if needed.
func (r *Registry) GetOrCreate(path string) *MemoryBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if buf, ok := r.documents[path]; ok {
		return buf
	}
	buf := NewMemoryBuffer(r.defaultText)
	r.documents[path] = buf
	return buf
}

// Get returns the live document at path, or nil if none exists yet.
func (r *Registry) Get(path string) *MemoryBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.documents[path]
}

// Paths lists the paths of all live documents.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var paths []string
	for p := range r.documents {
		paths = append(paths, p)
	}
	return paths
}

// Count returns the number of live documents.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.documents)
}
