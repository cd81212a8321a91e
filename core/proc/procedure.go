package proc

// Procedure transforms loaded resource content. Args are the parameters given
// after the procedure name in an identifier (e.g. "separate~- -").
type Procedure interface {
	Execute(content any, args ...string) (any, error)
}

// Func is a [Procedure] that can be represented just by the [Execute] method.
type Func func(content any, args ...string) (any, error)

// Execute satisfies [Procedure].
func (fn Func) Execute(content any, args ...string) (any, error) { return fn(content, args...) }

// Text adapts a string transformation into a Procedure. Byte content is
// converted to a string first; any other content is returned unchanged.
func Text(fn func(s string, args ...string) string) Func {
	return func(content any, args ...string) (any, error) {
		switch v := content.(type) {
		case string:
			return fn(v, args...), nil
		case []byte:
			return fn(string(v), args...), nil
		default:
			return content, nil
		}
	}
}

// Ref refers to a procedure either directly or by registry name. The zero
// Ref refers to no procedure and lets a fallback apply; an Invalid Ref also
// resolves to no procedure but takes precedence over fallbacks.
type Ref struct {
	name    string
	proc    Procedure
	invalid bool
}

// Named refers to the procedure registered as name, looked up at load time.
func Named(name string) Ref { return Ref{name: name} }

// Use refers to p directly.
func Use(p Procedure) Ref { return Ref{proc: p} }

// Invalid refers to a value that is not a procedure. Content passes through
// it unchanged.
func Invalid() Ref { return Ref{invalid: true} }

// Name returns the referenced name, or "" for a direct reference.
func (r Ref) Name() string { return r.name }

// IsZero reports whether r is unset. An Invalid Ref is set.
func (r Ref) IsZero() bool { return r.name == "" && r.proc == nil && !r.invalid }

func (r Ref) String() string {
	switch {
	case r.name != "":
		return r.name
	case r.proc != nil:
		return "<procedure>"
	case r.invalid:
		return "<invalid>"
	default:
		return "<none>"
	}
}

// asProcedure converts the procedure shapes accepted in configuration into a
// Procedure. Values of any other shape yield nil.
func asProcedure(v any) Procedure {
	switch p := v.(type) {
	case Procedure:
		return p
	case func(any, ...string) (any, error):
		return Func(p)
	case func(string, ...string) string:
		return Text(p)
	case func(string) string:
		return Text(func(s string, _ ...string) string { return p(s) })
	default:
		return nil
	}
}
