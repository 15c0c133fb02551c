package interp

// Environment is the single global variable scope of a script run. The
// language has no functions or nested scoping, so there is no parent chain;
// the environment is owned exclusively by one interpreter run and is never
// shared across goroutines.
type Environment struct {
	store map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// Get retrieves a variable by name. The second result is false when the
// identifier has never been assigned; the caller turns that into a runtime
// error, never a default value.
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Set binds a variable, inserting or overwriting.
func (e *Environment) Set(name string, value Value) {
	e.store[name] = value
}
