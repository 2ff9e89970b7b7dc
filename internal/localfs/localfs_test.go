package localfs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUploadSource(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "error.log", []byte("2025-01-21 10:00:00 ERROR:boom\n"), 0o644))

	files := New(fs, "error.log", "obj_download")
	src, err := files.OpenUploadSource()
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, "error.log", files.UploadSourceName())
	assert.EqualValues(t, 31, src.Size)
	assert.True(t, strings.HasPrefix(src.ContentType, "text/plain"), src.ContentType)

	data, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-21 10:00:00 ERROR:boom\n", string(data), "reader must be rewound after sniffing")
}

func TestOpenUploadSource_Missing(t *testing.T) {
	files := New(memfs.New(), "missing.txt", "obj_download")
	_, err := files.OpenUploadSource()
	assert.Error(t, err)
}

func TestWriteDownloadTarget_ReplacesExisting(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "obj_download", []byte("old contents"), 0o644))

	files := New(fs, "error.log", "obj_download")
	n, err := files.WriteDownloadTarget(strings.NewReader("new"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	data, err := util.ReadFile(fs, "obj_download")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteDownloadTarget_FailureLeavesNoPartialFile(t *testing.T) {
	fs := memfs.New()
	files := New(fs, "error.log", "obj_download")

	_, err := files.WriteDownloadTarget(io.MultiReader(strings.NewReader("partial"), failingReader{}))
	require.Error(t, err)

	_, statErr := fs.Stat("obj_download")
	assert.Error(t, statErr)

	entries, err := fs.ReadDir(".")
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be cleaned up")
}

func TestResolve(t *testing.T) {
	work := filepath.Join(string(filepath.Separator), "srv", "work")
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "relative", path: "error.log", want: filepath.Join(work, "error.log")},
		{name: "relative subdir", path: filepath.Join("out", "obj_download"), want: filepath.Join(work, "out", "obj_download")},
		{name: "absolute kept", path: filepath.Join(string(filepath.Separator), "var", "log", "bucketctl.log"), want: filepath.Join(string(filepath.Separator), "var", "log", "bucketctl.log")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(work, tt.path))
		})
	}
}

func TestOSFilesystem_AbsolutePathsStayPut(t *testing.T) {
	work := t.TempDir()
	elsewhere := t.TempDir()
	target := filepath.Join(elsewhere, "obj_download")

	files := New(NewOSFilesystem(), Resolve(work, "payload.txt"), Resolve(work, target))
	require.NoError(t, os.WriteFile(filepath.Join(work, "payload.txt"), []byte("payload"), 0o644))

	src, err := files.OpenUploadSource()
	require.NoError(t, err)
	defer src.Close()

	_, err = files.WriteDownloadTarget(src)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = os.Stat(filepath.Join(work, target))
	assert.True(t, os.IsNotExist(err), "absolute target must not be rebased under the working directory")
}
