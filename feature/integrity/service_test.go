package integrity

import (
	"context"
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"proc-loader/core/host"
	"proc-loader/core/loaders"
	"proc-loader/core/proc"
	"proc-loader/core/procedures"
	"proc-loader/core/source"
	"proc-loader/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newHost(src source.Source) *host.Host {
	h := host.New(src).Register(proc.Name, procedures.Register(proc.New()))
	return loaders.Register(h)
}

func testSource() source.Source {
	return source.NewFS(fstest.MapFS{
		"data/text.html": {Data: []byte("hello world")},
		"data.json":      {Data: []byte(`{"name":"proc"}`)},
	})
}

// uncheckable hides the Checker implementation of a source.
type uncheckable struct{ source.Source }

func TestService_CheckSource(t *testing.T) {
	cfg := Config{Concurrency: 2}

	report := NewService(newHost(testSource()), nil, "", cfg, zap.NewNop()).CheckSource(context.Background())
	assert.Equal(t, "ok", report.Status)

	missing := source.NewDir(t.TempDir() + "/missing")
	report = NewService(newHost(missing), nil, "", cfg, zap.NewNop()).CheckSource(context.Background())
	assert.Equal(t, "error", report.Status)
	assert.NotEmpty(t, report.Error)

	report = NewService(newHost(uncheckable{testSource()}), nil, "", cfg, zap.NewNop()).CheckSource(context.Background())
	assert.Equal(t, "unchecked", report.Status)
}

func TestService_CheckResources(t *testing.T) {
	cfg := Config{Resources: []string{"proc!data/text!revert"}, Concurrency: 2}
	svc := NewService(newHost(testSource()), nil, "", cfg, zap.NewNop())

	t.Run("Configured", func(t *testing.T) {
		report := svc.CheckResources(context.Background(), nil)
		assert.True(t, report.OK())
		assert.Equal(t, []string{"proc!data/text!revert"}, report.Resolved)
	})

	t.Run("Given", func(t *testing.T) {
		report := svc.CheckResources(context.Background(), []string{
			"proc!data/text",
			"proc!missing",
			"nope!data",
			"proc!json!data.json!",
		})
		assert.False(t, report.OK())
		assert.Equal(t, []string{"proc!data/text", "proc!json!data.json!"}, report.Resolved)
		assert.Len(t, report.Failed, 2)
		assert.Contains(t, report.Failed, "proc!missing")
		assert.Contains(t, report.Failed, "nope!data")
	})

	t.Run("Duplicates", func(t *testing.T) {
		report := svc.CheckResources(context.Background(), []string{
			"proc!data/text",
			"proc!missing",
			"proc!data/text",
			"proc!missing",
		})
		assert.Equal(t, []string{"proc!data/text"}, report.Resolved)
		assert.Len(t, report.Failed, 1)
		assert.Contains(t, report.Failed, "proc!missing")
	})
}

func TestService_Publish(t *testing.T) {
	cfg := Config{PublishPrefix: "rendered", Concurrency: 1}

	t.Run("Uploads", func(t *testing.T) {
		client := new(mocks.Client)
		var uploaded []string
		client.On("PutObject", mock.Anything, "resources", "rendered/data/text.revert", mock.Anything, int64(11), mock.Anything).
			Run(func(args mock.Arguments) {
				data, _ := io.ReadAll(args.Get(3).(io.Reader))
				uploaded = append(uploaded, string(data))
			}).
			Return(minio.UploadInfo{}, nil)
		client.On("PutObject", mock.Anything, "resources", "rendered/json.data.json", mock.Anything, int64(15), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc := NewService(newHost(testSource()), client, "resources", cfg, zap.NewNop())
		keys, err := svc.Publish(context.Background(), []string{"proc!data/text!revert", "proc!json!data.json!"})
		require.NoError(t, err)
		assert.Equal(t, []string{"rendered/data/text.revert", "rendered/json.data.json"}, keys)
		assert.Equal(t, []string{"world hello"}, uploaded)
		client.AssertExpectations(t)
	})

	t.Run("UploadFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("denied"))

		svc := NewService(newHost(testSource()), client, "resources", cfg, zap.NewNop())
		_, err := svc.Publish(context.Background(), []string{"proc!data/text"})
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("ResolveFails", func(t *testing.T) {
		client := new(mocks.Client)
		svc := NewService(newHost(testSource()), client, "resources", cfg, zap.NewNop())
		_, err := svc.Publish(context.Background(), []string{"proc!missing"})
		assert.ErrorIs(t, err, source.ErrNotFound)
		client.AssertNotCalled(t, "PutObject")
	})

	t.Run("NoStorage", func(t *testing.T) {
		svc := NewService(newHost(testSource()), nil, "", cfg, zap.NewNop())
		_, err := svc.Publish(context.Background(), []string{"proc!data/text"})
		assert.ErrorIs(t, err, ErrNoStorage)
	})
}

func TestPublishKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		id     string
		want   string
	}{
		{"Procedure", "rendered", "proc!data/text!revert", "rendered/data/text.revert"},
		{"EmbeddedLoader", "rendered", "proc!json!data.json!", "rendered/json.data.json"},
		{"Plain", "rendered", "data/text.html", "rendered/data/text.html"},
		{"NoPrefix", "", "proc!data/text", "data/text"},
		{"Traversal", "rendered", "proc!../../etc/passwd", "rendered/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublishKey(tt.prefix, tt.id))
		})
	}
}
