package resource

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"proc-loader/core/host"
	"proc-loader/core/loaders"
	"proc-loader/core/proc"
	"proc-loader/core/procedures"
	"proc-loader/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	src := source.NewFS(fstest.MapFS{
		"data/text.html": {Data: []byte("hello world")},
		"data/text.txt":  {Data: []byte("plain text")},
		"data.json":      {Data: []byte(`{"name":"proc"}`)},
		"page.html":      {Data: []byte(`<html><body><p id="x">para</p></body></html>`)},
		"notes.md":       {Data: []byte("# Notes")},
	})
	p := procedures.Register(proc.New())
	h := host.New(src).Register(proc.Name, p)
	loaders.Register(h)
	return NewService(h, p, zap.NewNop())
}

func TestService_Load(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
		o    Overrides
		want any
	}{
		{"PassThrough", "proc!data/text", Overrides{}, "hello world"},
		{"Procedure", "proc!data/text!revert", Overrides{}, "world hello"},
		{"Param", "proc!data/text!separate~- -", Overrides{}, "hello- -world"},
		{"ExtOverride", "proc!data/text!upper", Overrides{Ext: "txt"}, "PLAIN TEXT"},
		{"DefaultOverride", "proc!data/text", Overrides{Default: "revert"}, "world hello"},
		{"LoaderOverride", "proc!data/text", Overrides{Loader: "raw"}, []byte("hello world")},
		{"EmbeddedLoader", "proc!json!data.json!", Overrides{}, map[string]any{"name": "proc"}},
		{"Markdown", "proc!notes.md!markdown", Overrides{}, "<h1 id=\"notes\">Notes</h1>\n"},
		{"Select", "proc!page!select~#x", Overrides{}, "para"},
		{"PlainLoader", "text!data/text.txt", Overrides{}, "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := svc.Load(ctx, tt.id, tt.o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestService_LoadOverridesAreScoped(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Load(ctx, "proc!data/text", Overrides{Default: "revert"})
	require.NoError(t, err)

	v, err := svc.Load(ctx, "proc!data/text", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)
	assert.Nil(t, svc.host.Config(proc.Name))
}

func TestService_LoadErrors(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Load(ctx, "", Overrides{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Load(ctx, "proc!missing!revert", Overrides{})
	assert.ErrorIs(t, err, source.ErrNotFound)

	_, err = svc.Load(ctx, "nope!data", Overrides{})
	assert.ErrorIs(t, err, host.ErrUnknownPlugin)
}

func TestService_Procedures(t *testing.T) {
	svc := setupService(t)

	require.NoError(t, svc.RegisterExpression("shout", `content.upperAscii() + "!"`))
	assert.Contains(t, svc.Procedures(), "shout")

	v, err := svc.Load(context.Background(), "proc!data/text!shout", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD!", v)

	err = svc.RegisterExpression("bad", "content +")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.NotContains(t, svc.Procedures(), "bad")

	assert.ErrorIs(t, svc.RegisterExpression("", "content"), ErrInvalidInput)

	assert.True(t, svc.RemoveProcedure("shout"))
	assert.False(t, svc.RemoveProcedure("shout"))
}

func TestService_UpdateDefaults(t *testing.T) {
	svc := setupService(t)

	s := svc.UpdateDefaults(Defaults{Procedure: "revert", Ext: "txt"})
	assert.Equal(t, "revert", s.Procedure.Name())
	assert.Equal(t, "txt", s.Extension)
	assert.Equal(t, proc.DefaultLoader, s.Loader)
	assert.Equal(t, proc.DefaultParamSeparator, s.ParamSeparator)

	v, err := svc.Load(context.Background(), "proc!data/text", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "text plain", v)

	s = svc.UpdateDefaults(Defaults{})
	assert.Equal(t, "txt", s.Extension)
}

func TestService_LoadAll(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	values, err := svc.LoadAll(ctx, []string{"proc!data/text!revert", "proc!data/text"}, Overrides{Default: "upper"})
	require.NoError(t, err)
	assert.Equal(t, []any{"world hello", "HELLO WORLD"}, values)

	_, err = svc.LoadAll(ctx, []string{"proc!data/text", "proc!missing"}, Overrides{})
	assert.ErrorIs(t, err, source.ErrNotFound)

	_, err = svc.LoadAll(ctx, nil, Overrides{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
