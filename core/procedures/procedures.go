package procedures

import (
	"fmt"
	"maps"
	"slices"

	"proc-loader/core/proc"
)

// Built-in procedure names.
const (
	NameRevert   = "revert"
	NameSeparate = "separate"
	NameUpper    = "upper"
	NameLower    = "lower"
	NameTrim     = "trim"
	NameMarkdown = "markdown"
	NameSanitize = "sanitize"
	NameHTML2MD  = "html2md"
	NameSelect   = "select"
)

// Builtins returns a fresh set of the built-in procedures keyed by name.
func Builtins() map[string]proc.Procedure {
	return map[string]proc.Procedure{
		NameRevert:   Revert(),
		NameSeparate: Separate(),
		NameUpper:    Upper(),
		NameLower:    Lower(),
		NameTrim:     Trim(),
		NameMarkdown: Markdown(),
		NameSanitize: Sanitize(),
		NameHTML2MD:  HTMLToMarkdown(),
		NameSelect:   Select(),
	}
}

// Register installs the built-in procedures in p.
func Register(p *proc.Plugin) *proc.Plugin {
	builtins := Builtins()
	for _, name := range slices.Sorted(maps.Keys(builtins)) {
		p.SetProcedure(name, builtins[name])
	}
	return p
}

// RegisterExpressions compiles every expression and registers it under its
// name. Nothing is registered when any expression fails to compile.
func RegisterExpressions(p *proc.Plugin, exprs map[string]string) error {
	compiled := make(map[string]proc.Procedure, len(exprs))
	for _, name := range slices.Sorted(maps.Keys(exprs)) {
		fn, err := Expression(exprs[name])
		if err != nil {
			return fmt.Errorf("expression %q: %w", name, err)
		}
		compiled[name] = fn
	}
	for name, fn := range compiled {
		p.SetProcedure(name, fn)
	}
	return nil
}
