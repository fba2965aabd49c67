package object

// Registry tracks every Type known to a running interpreter: user-defined
// classes/enums plus lazily-created intrinsic singletons shared
// process-wide. It also serves as the module plug-in extension point: a
// host program can register a factory before the first script runs to add
// further intrinsic types.
type Registry struct {
	types     map[string]*Type
	factories map[string]func() *Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:     make(map[string]*Type),
		factories: make(map[string]func() *Type),
	}
}

// RegisterFactory installs a lazy constructor for an intrinsic type named
// name; the Type is built on first Get call and cached thereafter.
func (r *Registry) RegisterFactory(name string, factory func() *Type) {
	r.factories[name] = factory
}

// Define registers an already-built Type (used for user classes/enums).
func (r *Registry) Define(t *Type) {
	r.types[t.Name] = t
}

// Get resolves a type by name, lazily instantiating any registered
// intrinsic factory on first use.
func (r *Registry) Get(name string) (*Type, bool) {
	if t, ok := r.types[name]; ok {
		return t, true
	}
	if factory, ok := r.factories[name]; ok {
		t := factory()
		t.Intrinsic = true
		r.types[name] = t
		return t, true
	}
	return nil, false
}

// All returns every type that has been instantiated so far (intrinsic
// factories not yet touched are not included).
func (r *Registry) All() map[string]*Type {
	return r.types
}
