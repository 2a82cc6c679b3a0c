package media

import (
	"context"

	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"go.uber.org/zap"
)

// UploadTicket is the platform's answer to an upload-policy request: where to
// put the bytes and how to refer to the pending resource afterwards.
type UploadTicket struct {
	UploadURL string
	PublishID string
}

// Uploader models the platform's three-step content upload: request an
// upload policy, transfer the bytes, then publish the pending resource.
type Uploader interface {
	// Init requests an upload ticket for a video of the given size.
	Init(ctx context.Context, accessToken string, size int64) (*UploadTicket, error)

	// Transfer sends the staged file's bytes to the ticket's upload URL.
	Transfer(ctx context.Context, ticket *UploadTicket, file *SpooledFile) error

	// Publish finalizes the pending resource.
	Publish(ctx context.Context, accessToken string, ticket *UploadTicket) error
}

// NoopUploader acknowledges uploads without contacting the platform. It is
// the placeholder behind the "received" response until the real content API
// integration lands.
type NoopUploader struct{}

func NewNoopUploader() *NoopUploader {
	return &NoopUploader{}
}

func (u *NoopUploader) Init(ctx context.Context, accessToken string, size int64) (*UploadTicket, error) {
	logger.Info("Skipping upload init, content API integration not enabled",
		zap.Int64("size", size),
	)
	return &UploadTicket{}, nil
}

func (u *NoopUploader) Transfer(ctx context.Context, ticket *UploadTicket, file *SpooledFile) error {
	logger.Info("Skipping byte transfer, content API integration not enabled",
		zap.String("file", file.Name),
		zap.Int64("size", file.Size),
	)
	return nil
}

func (u *NoopUploader) Publish(ctx context.Context, accessToken string, ticket *UploadTicket) error {
	logger.Info("Skipping publish, content API integration not enabled")
	return nil
}
