package procedures

import (
	"fmt"
	"reflect"

	"proc-loader/core/proc"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	contentVar = "content"
	argsVar    = "args"
)

// Environment returns the CEL environment expressions are compiled in. It
// declares content (dyn) and args (list of strings) and enables the string
// extension library.
func Environment() (*cel.Env, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		cel.Variable(contentVar, cel.DynType),
		cel.Variable(argsVar, cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

// Expression compiles src into a procedure. Text and bytes are presented to
// the expression as a string, HTML documents as their markup, and decoded
// JSON or YAML as maps and lists.
//
//	content.upperAscii() + args.join("")
func Expression(src string) (proc.Func, error) {
	env, err := Environment()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(src)
	if err := issues.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build expression program: %w", err)
	}

	return func(content any, args ...string) (any, error) {
		input, err := celInput(content)
		if err != nil {
			return nil, err
		}
		if args == nil {
			args = []string{}
		}
		out, _, err := prg.Eval(map[string]any{
			contentVar: input,
			argsVar:    args,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate expression: %w", err)
		}
		switch v := out.Value().(type) {
		case string, bool, int64, uint64, float64, []byte:
			return v, nil
		}
		native, err := out.ConvertToNative(reflect.TypeOf(&structpb.Value{}))
		if err != nil {
			return nil, fmt.Errorf("unsupported expression result %v: %w", out.Type(), err)
		}
		return native.(*structpb.Value).AsInterface(), nil
	}, nil
}

// MustExpression is like Expression but panics on compile errors.
func MustExpression(src string) proc.Func {
	fn, err := Expression(src)
	if err != nil {
		panic(err)
	}
	return fn
}

func celInput(content any) (any, error) {
	switch v := content.(type) {
	case []byte:
		return string(v), nil
	case *goquery.Document:
		out, err := v.Html()
		if err != nil {
			return nil, fmt.Errorf("failed to render HTML document: %w", err)
		}
		return out, nil
	case nil:
		return "", nil
	default:
		return v, nil
	}
}
