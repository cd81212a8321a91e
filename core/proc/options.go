package proc

import (
	"reflect"

	"proc-loader/core/host"

	"github.com/go-viper/mapstructure/v2"
)

// Options is the per-call configuration a plugin receives from the host.
// Unset fields fall back to the plugin's Settings.
type Options struct {
	DefaultExt     string               `mapstructure:"defaultExt"`
	Default        Ref                  `mapstructure:"default"`
	Loader         string               `mapstructure:"loader"`
	ParamSeparator string               `mapstructure:"paramSeparator"`
	Procs          map[string]Procedure `mapstructure:"proc"`
}

var (
	refType       = reflect.TypeOf(Ref{})
	procedureType = reflect.TypeOf((*Procedure)(nil)).Elem()
)

// DecodeOptions decodes a generic host configuration into Options. A default
// that is present but not usable as a procedure decodes to an Invalid Ref and
// still overrides the plugin default. Decoding problems in other fields leave
// those fields unset; the returned error reports them and may be ignored.
func DecodeOptions(cfg host.Config) (Options, error) {
	var opts Options
	if len(cfg) == 0 {
		return opts, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(procedureHook),
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, err
	}
	err = dec.Decode(map[string]any(cfg))
	return opts, err
}

// procedureHook turns configuration values into Ref and Procedure values.
func procedureHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case refType:
		switch v := data.(type) {
		case nil:
			return Ref{}, nil
		case Ref:
			return v, nil
		case string:
			return Named(v), nil
		}
		if p := asProcedure(data); p != nil {
			return Use(p), nil
		}
		return Invalid(), nil
	case procedureType:
		if p := asProcedure(data); p != nil {
			return p, nil
		}
		return nil, nil
	default:
		return data, nil
	}
}
