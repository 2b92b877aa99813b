package extensibility

// ScriptContext is the extended-state store scripted guards and actions
// share across calls. It carries no lock of its own: every scripted callback
// runs synchronously inside the Machine's already-held api-lock, same as any
// other action or guard, so a caller never touches a ScriptContext from more
// than one goroutine at a time. It is unrelated to event data: event.Parameter
// carries per-call payload, ScriptContext carries state that persists
// between calls.
type ScriptContext struct {
	data map[string]any
}

// NewScriptContext returns an empty context.
func NewScriptContext() *ScriptContext {
	return &ScriptContext{data: make(map[string]any)}
}

// Get retrieves a value by key. The second return is false if key is unset.
func (c *ScriptContext) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

// Set stores a value by key.
func (c *ScriptContext) Set(key string, value any) {
	c.data[key] = value
}

// Delete removes a key.
func (c *ScriptContext) Delete(key string) {
	delete(c.data, key)
}
