// File: internal/localfs/localfs.go
package localfs

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Files gives the lifecycle layer byte-stream access to the fixed upload source
// and download target without exposing the rest of the filesystem
type Files struct {
	fs             billy.Filesystem
	uploadSource   string
	downloadTarget string
}

// Source is an opened upload payload; Close must be called once the upload returns
type Source struct {
	io.ReadCloser
	Name        string
	Size        int64
	ContentType string
}

// Roots the filesystem at "/" so configured absolute paths are never rebased;
// pass relative settings through Resolve first
func NewOSFilesystem() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// Anchors a relative path at workDir; absolute paths are only cleaned
func Resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

func New(fs billy.Filesystem, uploadSource, downloadTarget string) *Files {
	return &Files{
		fs:             fs,
		uploadSource:   uploadSource,
		downloadTarget: downloadTarget,
	}
}

func (f *Files) UploadSourceName() string {
	return filepath.Base(f.uploadSource)
}

func (f *Files) DownloadTarget() string {
	return f.downloadTarget
}

// Opens the upload source, detecting its content type from the leading bytes
func (f *Files) OpenUploadSource() (*Source, error) {
	info, err := f.fs.Stat(f.uploadSource)
	if err != nil {
		return nil, fmt.Errorf("error reading upload source %s: %w", f.uploadSource, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("upload source %s is a directory", f.uploadSource)
	}

	file, err := f.fs.Open(f.uploadSource)
	if err != nil {
		return nil, fmt.Errorf("error opening upload source %s: %w", f.uploadSource, err)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error detecting content type of %s: %w", f.uploadSource, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("error rewinding upload source %s: %w", f.uploadSource, err)
	}

	return &Source{
		ReadCloser:  file,
		Name:        f.uploadSource,
		Size:        info.Size(),
		ContentType: mtype.String(),
	}, nil
}

// Streams r into the download target. The content lands in a temporary file
// first, so a failed transfer never leaves a truncated target behind.
func (f *Files) WriteDownloadTarget(r io.Reader) (written int64, err error) {
	dir := filepath.Dir(f.downloadTarget)
	tmp, err := util.TempFile(f.fs, dir, "."+filepath.Base(f.downloadTarget)+"-")
	if err != nil {
		return 0, fmt.Errorf("error creating temporary download file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = f.fs.Remove(tmpName)
		}
	}()

	written, err = io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("error writing download: %w", err)
	}

	if err = f.replace(tmpName, f.downloadTarget); err != nil {
		return 0, err
	}
	return written, nil
}

func (f *Files) replace(from, to string) error {
	err := f.fs.Rename(from, to)
	if err == nil {
		return nil
	}

	// Some filesystems refuse to rename over an existing file
	if _, statErr := f.fs.Stat(to); statErr == nil {
		if rmErr := f.fs.Remove(to); rmErr != nil {
			return fmt.Errorf("error replacing %s: %w", to, errors.Join(err, rmErr))
		}
		if err = f.fs.Rename(from, to); err == nil {
			return nil
		}
	}
	return fmt.Errorf("error moving download into %s: %w", to, err)
}
