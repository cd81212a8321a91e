package loaders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"proc-loader/core/host"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

// Loader names as used in identifiers ("text!data/text.html").
const (
	Raw  = "raw"
	Text = "text"
	JSON = "json"
	YAML = "yaml"
	HTML = "html"
)

// Register installs every built-in loader in h.
func Register(h *host.Host) *host.Host {
	return h.
		Register(Raw, host.PluginFunc(loadRaw)).
		Register(Text, host.PluginFunc(loadText)).
		Register(JSON, host.PluginFunc(loadJSON)).
		Register(YAML, host.PluginFunc(loadYAML)).
		Register(HTML, host.PluginFunc(loadHTML))
}

func loadRaw(ctx context.Context, resource string, req host.Requirer, _ host.Config) (any, error) {
	return fetchBytes(ctx, resource, req)
}

func loadText(ctx context.Context, resource string, req host.Requirer, _ host.Config) (any, error) {
	data, err := fetchBytes(ctx, resource, req)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func loadJSON(ctx context.Context, resource string, req host.Requirer, _ host.Config) (any, error) {
	data, err := fetchBytes(ctx, resource, req)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode JSON %s: %w", resource, err)
	}
	return v, nil
}

func loadYAML(ctx context.Context, resource string, req host.Requirer, _ host.Config) (any, error) {
	data, err := fetchBytes(ctx, resource, req)
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode YAML %s: %w", resource, err)
	}
	return v, nil
}

func loadHTML(ctx context.Context, resource string, req host.Requirer, _ host.Config) (any, error) {
	data, err := fetchBytes(ctx, resource, req)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document %s: %w", resource, err)
	}
	return doc, nil
}

// fetchBytes requires resource from req. A resource that is itself an
// identifier is resolved by its plugin, so loaders can wrap other plugins
// as long as those produce text.
func fetchBytes(ctx context.Context, resource string, req host.Requirer) ([]byte, error) {
	v, err := req.Require(ctx, resource)
	if err != nil {
		return nil, err
	}
	switch data := v.(type) {
	case []byte:
		return data, nil
	case string:
		return []byte(data), nil
	default:
		return nil, fmt.Errorf("resource %s resolved to %T, not text", resource, v)
	}
}
