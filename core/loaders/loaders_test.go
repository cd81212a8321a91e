package loaders

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"proc-loader/core/host"
	"proc-loader/core/source"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost() *host.Host {
	src := source.NewFS(fstest.MapFS{
		"data/text.html": {Data: []byte("hello world")},
		"data.json":      {Data: []byte(`{"name":"proc","tags":["a","b"]}`)},
		"data.yaml":      {Data: []byte("name: proc\ncount: 2\n")},
		"page.html":      {Data: []byte(`<html><body><h1 class="title">Hi</h1></body></html>`)},
		"broken.json":    {Data: []byte(`{"name":`)},
		"broken.yaml":    {Data: []byte("a: [1, 2\n")},
	})
	return Register(host.New(src))
}

func TestRegister(t *testing.T) {
	assert.Equal(t, []string{HTML, JSON, Raw, Text, YAML}, newHost().Plugins())
}

func TestLoaders(t *testing.T) {
	h := newHost()
	ctx := context.Background()

	t.Run("Raw", func(t *testing.T) {
		v, err := h.Require(ctx, "raw!data/text.html")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello world"), v)
	})

	t.Run("Text", func(t *testing.T) {
		v, err := h.Require(ctx, "text!data/text.html")
		require.NoError(t, err)
		assert.Equal(t, "hello world", v)
	})

	t.Run("JSON", func(t *testing.T) {
		v, err := h.Require(ctx, "json!data.json")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "proc", "tags": []any{"a", "b"}}, v)
	})

	t.Run("YAML", func(t *testing.T) {
		v, err := h.Require(ctx, "yaml!data.yaml")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "proc", "count": 2}, v)
	})

	t.Run("HTML", func(t *testing.T) {
		v, err := h.Require(ctx, "html!page.html")
		require.NoError(t, err)
		doc, ok := v.(*goquery.Document)
		require.True(t, ok)
		assert.Equal(t, "Hi", doc.Find("h1.title").Text())
	})

	t.Run("Nested", func(t *testing.T) {
		v, err := h.Require(ctx, "text!raw!data/text.html")
		require.NoError(t, err)
		assert.Equal(t, "hello world", v)
	})
}

func TestLoaders_Errors(t *testing.T) {
	h := newHost()
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		_, err := h.Require(ctx, "text!missing.html")
		assert.True(t, errors.Is(err, source.ErrNotFound))
	})

	t.Run("BrokenJSON", func(t *testing.T) {
		_, err := h.Require(ctx, "json!broken.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
	})

	t.Run("BrokenYAML", func(t *testing.T) {
		_, err := h.Require(ctx, "yaml!broken.yaml")
		assert.Error(t, err)
	})

	t.Run("NotText", func(t *testing.T) {
		_, err := h.Require(ctx, "text!json!data.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not text")
	})
}
