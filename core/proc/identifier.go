package proc

import (
	"path"
	"strings"
)

// Delimiter separates the loader, path and procedure segments of an identifier.
const Delimiter = "!"

// Identifier is a parsed "[loader!]path[!procedure]" resource identifier.
type Identifier struct {
	// Loader is the loader embedded in the path segment, if any.
	Loader string
	// Path is the resource path.
	Path string
	// Procedure is the requested procedure name, if any.
	Procedure string
	// Args are the procedure parameters.
	Args []string
}

// HasProcedure reports whether the identifier requests a procedure explicitly.
func (id Identifier) HasProcedure() bool { return id.Procedure != "" }

// ParseIdentifier splits s at its last delimiter into a path and a procedure
// segment. When paramSep is non-empty the procedure segment is further split
// into a name and parameters. A delimiter remaining in the path marks an
// embedded loader, which ends at the first delimiter.
func ParseIdentifier(s, paramSep string) Identifier {
	var id Identifier

	rest := s
	if i := strings.LastIndex(s, Delimiter); i >= 0 {
		rest = s[:i]
		id.Procedure = s[i+len(Delimiter):]
	}

	if paramSep != "" && id.Procedure != "" {
		parts := strings.Split(id.Procedure, paramSep)
		id.Procedure = parts[0]
		if id.Procedure != "" && len(parts) > 1 {
			id.Args = parts[1:]
		}
	}

	if loader, p, ok := strings.Cut(rest, Delimiter); ok {
		id.Loader = loader
		rest = p
	}
	id.Path = rest
	return id
}

// WithExtension appends "."+ext to name when its last segment has no extension.
func WithExtension(name, ext string) string {
	if ext == "" || path.Ext(name) != "" {
		return name
	}
	return name + "." + ext
}
