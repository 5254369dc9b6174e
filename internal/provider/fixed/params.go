// Package fixed holds the legacy per-provider clients with inlined request and
// response logic for the four built-in providers. Each is functionally a
// hard-coded special case of the declarative client; new providers should get
// a declarative description instead of a client here.
package fixed

// Variant is the client variant identifier shared by all fixed clients.
const Variant = "fixed"

// floatParam reads a numeric parameter, accepting the numeric types JSON and
// YAML decoding produce.
func floatParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// intParam reads an integer parameter.
func intParam(params map[string]any, key string) (int, bool) {
	f, ok := floatParam(params, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}
