// Package media handles the transient on-disk staging of uploaded videos.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/secondary4432-cyber/framelift-ai/internal/config"
	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Spool writes incoming multipart files to per-request temp files. Each file
// name carries a uuid so concurrent uploads of the same file never collide.
type Spool struct {
	dir string
}

type SpoolParams struct {
	fx.In

	Config *config.Config
}

// NewSpool creates a Spool rooted at the configured directory, falling back
// to the system temp dir.
func NewSpool(params SpoolParams) *Spool {
	dir := params.Config.Media.SpoolDir
	if dir == "" {
		dir = os.TempDir()
	}
	return &Spool{dir: dir}
}

// SpooledFile is one staged upload. Discard removes it from disk and is safe
// to defer at acquisition: it runs exactly once no matter how many exit paths
// reach it, so no handler path can leak the file.
type SpooledFile struct {
	Path string
	Name string
	Size int64

	once sync.Once
}

// Discard deletes the staged file. Idempotent.
func (f *SpooledFile) Discard() {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			logger.Error("Failed to remove spooled file",
				zap.String("path", f.Path),
				zap.Error(err),
			)
		}
	})
}

// Save stages one multipart file part to disk and returns its handle.
func (s *Spool) Save(file multipart.File, header *multipart.FileHeader) (*SpooledFile, error) {
	name := filepath.Base(header.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("framelift-%s-%s", uuid.NewString(), name))

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	size, err := io.Copy(dst, file)
	if closeErr := dst.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		// Never leave a partial file behind.
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Error("Failed to remove partial spool file",
				zap.String("path", path),
				zap.Error(rmErr),
			)
		}
		return nil, fmt.Errorf("failed to write spool file: %w", err)
	}

	return &SpooledFile{Path: path, Name: name, Size: size}, nil
}

// Module provides the media dependencies
var Module = fx.Options(
	fx.Provide(
		NewSpool,
		fx.Annotate(
			NewNoopUploader,
			fx.As(new(Uploader)),
		),
	),
)
