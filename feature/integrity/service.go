package integrity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"proc-loader/core/host"
	"proc-loader/core/source"
	"proc-loader/core/storage"

	"github.com/PuerkitoBio/goquery"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoStorage is returned by Publish when no bucket is configured.
var ErrNoStorage = errors.New("no storage client configured")

// SourceReport describes the reachability of the resource source.
type SourceReport struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ResourceReport lists which identifiers resolved.
type ResourceReport struct {
	Resolved []string          `json:"resolved"`
	Failed   map[string]string `json:"failed"`
}

// OK reports whether every identifier resolved.
func (r ResourceReport) OK() bool {
	return len(r.Failed) == 0
}

// Service checks that the source is reachable and that identifiers resolve,
// and publishes rendered resources to the bucket.
type Service struct {
	host   *host.Host
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when the
// source is not a bucket; Publish is unavailable then.
func NewService(h *host.Host, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Service{host: h, client: client, bucket: bucket, cfg: cfg, logger: logger}
}

// CheckSource verifies the source when it supports checking.
func (s *Service) CheckSource(ctx context.Context) SourceReport {
	checker, ok := s.host.Source().(source.Checker)
	if !ok {
		return SourceReport{Status: "unchecked"}
	}
	if err := checker.Check(ctx); err != nil {
		return SourceReport{Status: "error", Error: err.Error()}
	}
	return SourceReport{Status: "ok"}
}

// CheckResources resolves every distinct identifier, or the configured ones
// when ids is empty. Failures are collected, not returned.
func (s *Service) CheckResources(ctx context.Context, ids []string) ResourceReport {
	if len(ids) == 0 {
		ids = s.cfg.Resources
	}
	ids = distinct(ids)
	report := ResourceReport{Resolved: []string{}, Failed: map[string]string{}}
	resolved := make([]bool, len(ids))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			if _, err := s.host.Require(ctx, id); err != nil {
				mu.Lock()
				report.Failed[id] = err.Error()
				mu.Unlock()
				return nil
			}
			resolved[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		if resolved[i] {
			report.Resolved = append(report.Resolved, id)
		}
	}
	if !report.OK() {
		s.logger.Warn("Unresolvable resources detected", zap.Int("failed", len(report.Failed)))
	}
	return report
}

// distinct returns ids without repeats, keeping first occurrences in order.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Publish renders every identifier and uploads the result to the bucket
// under the publish prefix. It returns the written keys in input order.
func (s *Service) Publish(ctx context.Context, ids []string) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	values, err := s.host.RequireAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		data, err := render(values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", id, err)
		}
		key := PublishKey(s.cfg.PublishPrefix, id)
		_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
		if err != nil {
			s.logger.Error("Failed to publish resource", zap.String("id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to upload %s: %w", key, err)
		}
		s.logger.Info("Published resource", zap.String("id", id), zap.String("key", key))
		keys[i] = key
	}
	return keys, nil
}

// PublishKey derives the object key for a rendered identifier: the leading
// plugin name is dropped and the remaining delimiters become dots, so
// "proc!data/text!revert" is stored as "<prefix>/data/text.revert".
func PublishKey(prefix, id string) string {
	if _, rest, ok := strings.Cut(id, host.Delimiter); ok {
		id = rest
	}
	id = strings.Trim(strings.ReplaceAll(id, host.Delimiter, "."), ".")
	return strings.TrimPrefix(path.Join(prefix, path.Clean("/"+id)), "/")
}

func render(v any) ([]byte, error) {
	switch value := v.(type) {
	case []byte:
		return value, nil
	case string:
		return []byte(value), nil
	case *goquery.Document:
		out, err := value.Html()
		return []byte(out), err
	default:
		return json.Marshal(v)
	}
}
