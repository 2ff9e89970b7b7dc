// File: internal/diagnostics/reporter.go
package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
)

// Reporter writes failures of remote and local I/O calls to the diagnostic sink.
// It never aborts: callers report and then return their own negative result.
type Reporter struct {
	file   billy.File
	logger *slog.Logger
}

// Opens the sink at path on fs, truncating anything left by a previous run
func Open(fs billy.Filesystem, path string) (*Reporter, error) {
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open diagnostic log %s: %w", path, err)
	}

	return &Reporter{
		file:   file,
		logger: slog.New(newLineHandler(file, slog.LevelInfo)),
	}, nil
}

// Records err under the operation name op, with optional key/value context
func (r *Reporter) Report(ctx context.Context, op string, err error, attrs ...any) {
	if r == nil || err == nil {
		return
	}
	r.logger.ErrorContext(ctx, fmt.Sprintf("%s: %v", op, err), attrs...)
}

func (r *Reporter) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}
