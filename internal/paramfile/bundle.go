package paramfile

// Parameter is one qualifier/value pair of a parameter file. Values are kept
// verbatim (unquoted); interpreting them is the engine's business.
type Parameter struct {
	Qualifier string
	Value     string
}

// Bundle is a fully parsed parameter file.
type Bundle struct {
	// Source is the path the bundle was read from.
	Source     string
	Parameters []Parameter
}

// Len returns the number of parameters in the bundle.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Parameters)
}

// Lookup returns the value for a qualifier.
func (b *Bundle) Lookup(qualifier string) (string, bool) {
	if b == nil {
		return "", false
	}
	for _, p := range b.Parameters {
		if p.Qualifier == qualifier {
			return p.Value, true
		}
	}
	return "", false
}

// set assigns a value, keeping the position of the first assignment.
func (b *Bundle) set(qualifier, value string) {
	for i := range b.Parameters {
		if b.Parameters[i].Qualifier == qualifier {
			b.Parameters[i].Value = value
			return
		}
	}
	b.Parameters = append(b.Parameters, Parameter{Qualifier: qualifier, Value: value})
}
