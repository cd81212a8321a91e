package procedures

import (
	"bytes"
	"fmt"
	"strings"

	"proc-loader/core/proc"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown renders CommonMark content to HTML. The output is not sanitized;
// chain it with Sanitize for untrusted input.
func Markdown() proc.Func {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Table,
			extension.Strikethrough,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return markup(func(input string) (string, error) {
		out := &bytes.Buffer{}
		if err := md.Convert([]byte(input), out); err != nil {
			return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
		}
		return out.String(), nil
	})
}

// Sanitize strips unsafe elements and attributes from HTML using the
// bluemonday user generated content policy.
func Sanitize() proc.Func {
	policy := bluemonday.UGCPolicy()
	return markup(func(input string) (string, error) {
		return policy.Sanitize(input), nil
	})
}

// HTMLToMarkdown converts HTML into CommonMark-compatible Markdown.
func HTMLToMarkdown() proc.Func {
	conv := converter.NewConverter(
		converter.WithEscapeMode(converter.EscapeModeSmart),
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithEmDelimiter("_"),
				commonmark.WithHorizontalRule("---"),
			),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)

	return markup(func(input string) (string, error) {
		out, err := conv.ConvertString(input)
		if err != nil {
			return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
		}
		return strings.TrimSpace(out), nil
	})
}

// Select returns the inner HTML of the first element matching the CSS
// selector in args[0]. Without a selector, or when nothing matches, the
// result is an empty string.
func Select() proc.Func {
	return func(content any, args ...string) (any, error) {
		doc, ok, err := document(content)
		if !ok || err != nil {
			return content, err
		}
		if len(args) == 0 || args[0] == "" {
			return "", nil
		}
		sel := doc.Find(args[0]).First()
		if sel.Length() == 0 {
			return "", nil
		}
		out, err := sel.Html()
		if err != nil {
			return nil, fmt.Errorf("failed to render selection %q: %w", args[0], err)
		}
		return out, nil
	}
}

// markup adapts a string transform to content that is text, bytes or an HTML
// document. Other content is returned unchanged.
func markup(fn func(string) (string, error)) proc.Func {
	return func(content any, _ ...string) (any, error) {
		input, ok, err := textOf(content)
		if !ok || err != nil {
			return content, err
		}
		return fn(input)
	}
}

func textOf(content any) (string, bool, error) {
	switch v := content.(type) {
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	case *goquery.Document:
		out, err := v.Html()
		if err != nil {
			return "", true, fmt.Errorf("failed to render HTML document: %w", err)
		}
		return out, true, nil
	default:
		return "", false, nil
	}
}

func document(content any) (*goquery.Document, bool, error) {
	switch v := content.(type) {
	case *goquery.Document:
		return v, true, nil
	case string:
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(v))
		if err != nil {
			return nil, true, fmt.Errorf("failed to parse HTML document: %w", err)
		}
		return doc, true, nil
	case []byte:
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(v))
		if err != nil {
			return nil, true, fmt.Errorf("failed to parse HTML document: %w", err)
		}
		return doc, true, nil
	default:
		return nil, false, nil
	}
}
