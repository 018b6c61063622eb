package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// OptionType is the value type of a configuration option.
type OptionType int

const (
	TypeBool OptionType = iota
	TypeInt
	TypeFloat
	TypeString
)

// String returns the lowercase type name used in error messages.
func (t OptionType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Definition declares an option before the configuration store is resolved.
type Definition struct {
	Type    OptionType
	Name    string
	Default interface{}
}

// Option is a registered option with its current value.
type Option struct {
	Type    OptionType
	Name    string
	Default interface{}
	Value   interface{}
}

// Registry holds the options known to this process. Values loaded from the
// configuration store only land on registered names.
type Registry struct {
	mu      sync.RWMutex
	options map[string]*Option
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{options: make(map[string]*Option)}
}

// Register adds an option with its default value. Registering the same name
// again with the same type and default is a no-op; any other re-registration
// returns an *OptionConflictError.
func (r *Registry) Register(t OptionType, name string, def interface{}) error {
	if name == "" {
		return fmt.Errorf("option name cannot be empty")
	}
	value, err := coerce(t, def)
	if err != nil {
		return fmt.Errorf("invalid default for option %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.options[name]; ok {
		if existing.Type == t && existing.Default == value {
			return nil
		}
		return &OptionConflictError{
			Name:            name,
			ExistingType:    existing.Type,
			ExistingDefault: existing.Default,
			Type:            t,
			Default:         value,
		}
	}

	r.options[name] = &Option{Type: t, Name: name, Default: value, Value: value}
	return nil
}

// RegisterAll registers every definition, stopping at the first error.
func (r *Registry) RegisterAll(defs ...Definition) error {
	for _, d := range defs {
		if err := r.Register(d.Type, d.Name, d.Default); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a copy of the named option.
func (r *Registry) Get(name string) (Option, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opt, ok := r.options[name]
	if !ok {
		return Option{}, false
	}
	return *opt, true
}

// Bool returns the value of a boolean option.
func (r *Registry) Bool(name string) (bool, error) {
	opt, ok := r.Get(name)
	if !ok {
		return false, fmt.Errorf("option %s is not registered", name)
	}
	b, ok := opt.Value.(bool)
	if !ok {
		return false, fmt.Errorf("option %s is %s, not bool", name, opt.Type)
	}
	return b, nil
}

// String returns the value of a string option.
func (r *Registry) String(name string) (string, error) {
	opt, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("option %s is not registered", name)
	}
	s, ok := opt.Value.(string)
	if !ok {
		return "", fmt.Errorf("option %s is %s, not string", name, opt.Type)
	}
	return s, nil
}

// Set parses raw according to the option's type and stores it.
func (r *Registry) Set(name, raw string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	opt, ok := r.options[name]
	if !ok {
		return fmt.Errorf("option %s is not registered", name)
	}
	value, err := parseRaw(opt.Type, raw)
	if err != nil {
		return fmt.Errorf("invalid value for option %s: %w", name, err)
	}
	opt.Value = value
	return nil
}

// SetValue stores an already-decoded value, converting between compatible
// numeric kinds.
func (r *Registry) SetValue(name string, v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	opt, ok := r.options[name]
	if !ok {
		return fmt.Errorf("option %s is not registered", name)
	}
	value, err := coerce(opt.Type, v)
	if err != nil {
		return fmt.Errorf("invalid value for option %s: %w", name, err)
	}
	opt.Value = value
	return nil
}

// Apply stores several decoded values at once. Either every known value is
// stored or, on the first invalid one, none is. Names that are not registered
// are returned in skipped.
func (r *Registry) Apply(values map[string]interface{}) (skipped []string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[string]interface{}, len(values))
	for name, v := range values {
		opt, ok := r.options[name]
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		value, err := coerce(opt.Type, v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for option %s: %w", name, err)
		}
		staged[name] = value
	}

	for name, value := range staged {
		r.options[name].Value = value
	}
	sort.Strings(skipped)
	return skipped, nil
}

// Names returns the registered option names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.options))
	for name := range r.options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns a snapshot of every option's current value.
func (r *Registry) Values() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make(map[string]interface{}, len(r.options))
	for name, opt := range r.options {
		values[name] = opt.Value
	}
	return values
}

// Reset restores every option to its default.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, opt := range r.options {
		opt.Value = opt.Default
	}
}

func coerce(t OptionType, v interface{}) (interface{}, error) {
	switch t {
	case TypeBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return parseRaw(t, b)
		}
	case TypeInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
		case string:
			return parseRaw(t, n)
		}
	case TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			return parseRaw(t, n)
		}
	case TypeString:
		switch s := v.(type) {
		case string:
			return s, nil
		case nil:
			return "", nil
		default:
			return fmt.Sprint(s), nil
		}
	default:
		return nil, fmt.Errorf("unknown option type %d", int(t))
	}
	return nil, fmt.Errorf("cannot use %v (%T) as %s", v, v, t)
}

func parseRaw(t OptionType, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	switch t {
	case TypeBool:
		switch strings.ToUpper(raw) {
		case "1", "TRUE", "YES", "ON":
			return true, nil
		case "0", "FALSE", "NO", "OFF":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", raw)
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	case TypeString:
		return unquote(raw), nil
	default:
		return nil, fmt.Errorf("unknown option type %d", int(t))
	}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
