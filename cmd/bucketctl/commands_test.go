package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketctl/internal/config"
	"bucketctl/internal/provider/registry"
	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

const testProvider = "cmdtest"

// memRemote is an in-memory provider; unknown buckets fail like a real endpoint
type memRemote struct {
	buckets map[string]map[string]string
	calls   map[string]int
}

func newMemRemote(buckets map[string]map[string]string) *memRemote {
	if buckets == nil {
		buckets = map[string]map[string]string{}
	}
	return &memRemote{buckets: buckets, calls: map[string]int{}}
}

func (m *memRemote) ProviderName() common.Provider { return common.MinIO }
func (m *memRemote) Close() error                  { return nil }

func (m *memRemote) ListBuckets(context.Context) ([]storage.Bucket, error) {
	out := make([]storage.Bucket, 0, len(m.buckets))
	for name := range m.buckets {
		out = append(out, storage.Bucket{Name: name, Provider: common.MinIO})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRemote) CreateBucket(_ context.Context, name, _ string) error {
	m.calls["create"]++
	m.buckets[name] = map[string]string{}
	return nil
}

func (m *memRemote) DeleteBucket(_ context.Context, name string) error {
	m.calls["deleteBucket"]++
	delete(m.buckets, name)
	return nil
}

func (m *memRemote) ListObjects(_ context.Context, bucket string) ([]storage.Object, error) {
	objects, ok := m.buckets[bucket]
	if !ok {
		return nil, storage.Classify("NoSuchBucket", errors.New("NoSuchBucket: The specified bucket does not exist"))
	}
	out := make([]storage.Object, 0, len(objects))
	for k, v := range objects {
		out = append(out, storage.Object{Key: k, Bucket: bucket, Size: int64(len(v))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memRemote) PutObject(_ context.Context, bucket, key string, body io.Reader, _ int64, _ string) error {
	m.calls["put"]++
	data, err := io.ReadAll(body)
	m.buckets[bucket][key] = string(data)
	return err
}

func (m *memRemote) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.buckets[bucket][key])), nil
}

func (m *memRemote) DeleteObject(_ context.Context, bucket, key string) error {
	m.calls["deleteObject"]++
	delete(m.buckets[bucket], key)
	return nil
}

func (m *memRemote) CopyObject(_ context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	m.calls["copy"]++
	m.buckets[destBucket][destKey] = m.buckets[srcBucket][srcKey]
	return nil
}

func registerMemRemote(t *testing.T, remote *memRemote) {
	t.Helper()
	registry.RegisterProvider(testProvider, registry.ProviderRegistration{
		ConfigCheck: func(*config.Config) bool { return true },
		Initializer: func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) {
			return remote, nil
		},
	})
	t.Cleanup(func() { registry.Unregister(testProvider) })
}

// Prepares a working directory holding payload.txt and a config pointing at it
func workspace(t *testing.T, extraConfig string) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payload.txt"), []byte("payload"), 0o644))

	cfgPath = filepath.Join(dir, "config.yaml")
	cfg := "files:\n  upload_source: payload.txt\n  download_target: obj_download\n" + extraConfig
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return dir, cfgPath
}

func TestStorageCommands(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		input      string
		wantCode   int
		wantOut    string
		wantErr    string
		wantCalls  map[string]int
		wantRemote func(t *testing.T, remote *memRemote)
	}{
		{
			name:     "object list",
			args:     []string{"object", "list", "--bucket", "alpha"},
			wantCode: 0,
			wantOut:  "a.txt",
		},
		{
			name:     "object list on empty bucket",
			args:     []string{"object", "list", "-b", "empty"},
			wantCode: 0,
			wantOut:  "There are no objects in the empty bucket!",
		},
		{
			name:      "upload defaults key to source name",
			args:      []string{"object", "upload", "--bucket", "empty"},
			wantOut:   "The payload.txt object has been uploaded to the empty bucket!",
			wantCalls: map[string]int{"put": 1},
			wantRemote: func(t *testing.T, remote *memRemote) {
				assert.Equal(t, "payload", remote.buckets["empty"]["payload.txt"])
			},
		},
		{
			name:      "upload to missing bucket is refused",
			args:      []string{"object", "upload", "--bucket", "nowhere", "--key", "x"},
			wantCode:  1,
			wantErr:   "bucket not in range",
			wantCalls: map[string]int{"put": 0},
		},
		{
			name:      "delete object with force",
			args:      []string{"object", "delete", "a.txt", "--bucket", "alpha", "--force"},
			wantOut:   "The a.txt object was deleted from the alpha bucket!",
			wantCalls: map[string]int{"deleteObject": 1},
		},
		{
			name:      "delete object confirmed",
			args:      []string{"object", "delete", "a.txt", "--bucket", "alpha"},
			input:     "a.txt\n",
			wantOut:   "The a.txt object was deleted",
			wantCalls: map[string]int{"deleteObject": 1},
		},
		{
			name:      "delete object not confirmed",
			args:      []string{"object", "delete", "a.txt", "--bucket", "alpha"},
			input:     "b.txt\n",
			wantOut:   "Deletion cancelled.",
			wantCalls: map[string]int{"deleteObject": 0},
		},
		{
			name:      "delete unlisted object",
			args:      []string{"object", "delete", "zzz", "--bucket", "alpha", "-f"},
			wantCode:  1,
			wantErr:   "object name out of range",
			wantCalls: map[string]int{"deleteObject": 0},
		},
		{
			name:      "copy keeps the key",
			args:      []string{"object", "copy", "a.txt", "--bucket", "alpha", "--to", "empty"},
			wantOut:   "a.txt was copied from alpha to empty!",
			wantCalls: map[string]int{"copy": 1},
			wantRemote: func(t *testing.T, remote *memRemote) {
				assert.Equal(t, "data", remote.buckets["empty"]["a.txt"])
			},
		},
		{
			name:      "copy with destination key",
			args:      []string{"object", "copy", "a.txt", "--bucket", "alpha", "--to", "empty", "--dest-key", "b.txt"},
			wantCalls: map[string]int{"copy": 1},
			wantRemote: func(t *testing.T, remote *memRemote) {
				assert.Equal(t, "data", remote.buckets["empty"]["b.txt"])
			},
		},
		{
			name:      "copy into the same bucket",
			args:      []string{"object", "copy", "a.txt", "--bucket", "alpha", "--to", "alpha"},
			wantCode:  1,
			wantErr:   "cannot copy to the same bucket",
			wantCalls: map[string]int{"copy": 0},
		},
		{
			name:     "copy needs a destination",
			args:     []string{"object", "copy", "a.txt", "--bucket", "alpha"},
			wantCode: 1,
			wantErr:  `required flag(s) "to" not set`,
		},
		{
			name:     "object commands need a bucket",
			args:     []string{"object", "list"},
			wantCode: 1,
			wantErr:  `required flag(s) "bucket" not set`,
		},
		{
			name:     "download",
			args:     []string{"object", "download", "a.txt", "--bucket", "alpha"},
			wantOut:  "has been downloaded to the local environment as",
			wantCode: 0,
		},
		{
			name:      "create from names",
			args:      []string{"bucket", "create", "jane", "doe"},
			wantOut:   "Bucket janedoe-",
			wantCalls: map[string]int{"create": 1},
		},
		{
			name:      "create with explicit name",
			args:      []string{"bucket", "create", "--name", "reports"},
			wantOut:   "Bucket reports has been created!",
			wantCalls: map[string]int{"create": 1},
		},
		{
			name:      "create with a taken fragment",
			args:      []string{"bucket", "create", "--name", "alp"},
			wantCode:  1,
			wantErr:   "bucket name already exists",
			wantCalls: map[string]int{"create": 0},
		},
		{
			name:      "create with invalid characters",
			args:      []string{"bucket", "create", "Jane", "Doe"},
			wantCode:  1,
			wantErr:   "name must contain only lowercase letters and hyphens",
			wantCalls: map[string]int{"create": 0},
		},
		{
			name:      "delete empty bucket with force",
			args:      []string{"bucket", "delete", "empty", "--force"},
			wantOut:   "The empty bucket has been deleted!",
			wantCalls: map[string]int{"deleteBucket": 1},
		},
		{
			name:      "delete bucket not confirmed",
			args:      []string{"bucket", "delete", "empty"},
			input:     "nope\n",
			wantOut:   "Deletion cancelled.",
			wantCalls: map[string]int{"deleteBucket": 0},
		},
		{
			name:      "delete bucket confirmed at end of input",
			args:      []string{"bucket", "delete", "empty"},
			input:     "empty",
			wantOut:   "The empty bucket has been deleted!",
			wantCalls: map[string]int{"deleteBucket": 1},
		},
		{
			name:      "delete non-empty bucket is refused",
			args:      []string{"bucket", "delete", "alpha", "-f"},
			wantCode:  1,
			wantErr:   "bucket should be empty before deleting",
			wantCalls: map[string]int{"deleteBucket": 0},
		},
		{
			name:     "bucket list",
			args:     []string{"bucket", "list"},
			wantOut:  "BUCKET NAME",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newMemRemote(map[string]map[string]string{
				"alpha": {"a.txt": "data"},
				"empty": {},
			})
			registerMemRemote(t, remote)
			dir, cfgPath := workspace(t, "")

			var out, errOut bytes.Buffer
			args := append([]string{"--config", cfgPath, "--provider", testProvider}, tt.args...)
			code := execute(context.Background(), args, strings.NewReader(tt.input), &out, &errOut)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", errOut.String())
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, errOut.String(), tt.wantErr)
			}
			for call, n := range tt.wantCalls {
				assert.Equal(t, n, remote.calls[call], call)
			}
			if tt.wantRemote != nil {
				tt.wantRemote(t, remote)
			}

			// Refused operations never reach the diagnostic sink; flag errors stop before it opens
			sink, err := os.ReadFile(filepath.Join(dir, "error.log"))
			if err == nil {
				assert.Empty(t, sink)
			} else {
				assert.True(t, os.IsNotExist(err), err)
			}
		})
	}
}

func TestObjectDownloadWritesTarget(t *testing.T) {
	registerMemRemote(t, newMemRemote(map[string]map[string]string{"alpha": {"a.txt": "data"}}))
	dir, cfgPath := workspace(t, "")

	code, out, errOut := runCLI(t, "--config", cfgPath, "--provider", testProvider, "object", "download", "a.txt", "-b", "alpha")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, filepath.Join(dir, "obj_download"))

	data, err := os.ReadFile(filepath.Join(dir, "obj_download"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestAbsoluteDiagnosticsFileIsNotRebased(t *testing.T) {
	registerMemRemote(t, newMemRemote(nil))
	sinkPath := filepath.Join(t.TempDir(), "bucketctl.log")
	dir, cfgPath := workspace(t, "diagnostics:\n  file: "+sinkPath+"\n")

	// Listing a bucket the endpoint does not know is a transport failure
	code, _, errOut := runCLI(t, "--config", cfgPath, "--provider", testProvider, "object", "list", "-b", "ghost")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "NoSuchBucket")

	data, err := os.ReadFile(sinkPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), " ERROR:"))

	_, err = os.Stat(filepath.Join(dir, sinkPath))
	assert.True(t, os.IsNotExist(err))
}

func TestInterruptHandlingSkipsInteractiveMenu(t *testing.T) {
	registerMemRemote(t, newMemRemote(map[string]map[string]string{"alpha": {}}))
	_, cfgPath := workspace(t, "")

	var wrapped, stopped int
	newTestCLI := func(input string, out *bytes.Buffer) *cli {
		c := newCLI(strings.NewReader(input), out, out)
		c.interrupts = func(ctx context.Context) (context.Context, context.CancelFunc) {
			wrapped++
			ctx, cancel := context.WithCancel(ctx)
			return ctx, func() { stopped++; cancel() }
		}
		return c
	}

	// The menu blocks on stdin, so Ctrl-C must keep its default exit there
	var out bytes.Buffer
	code := newTestCLI("7\n", &out).run(context.Background(), []string{"--config", cfgPath, "--provider", testProvider})
	require.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Exiting program.")
	assert.Zero(t, wrapped)

	out.Reset()
	code = newTestCLI("", &out).run(context.Background(), []string{"--config", cfgPath, "--provider", testProvider, "object", "list", "-b", "alpha"})
	require.Equal(t, 0, code, out.String())
	assert.Equal(t, 1, wrapped)
	assert.Equal(t, 1, stopped)
}
