// Package loaders provides the underlying loader plugins the proc plugin
// delegates to.
//
// Each loader reads bytes through the host and decodes them:
//
//	raw   []byte
//	text  string
//	json  any (encoding/json)
//	yaml  any (gopkg.in/yaml.v3)
//	html  *goquery.Document
package loaders
