// Package upload validates and stores record attachments (receipts,
// certificates, building photos and short videos).
package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"berdoz/internal/core"
)

// File is one uploaded file as received from a client.
type File struct {
	Folder       string
	OriginalName string
	ContentType  string
	Body         io.Reader
}

// Service checks uploads and hands them to a Storage.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

func NewService(storage Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{storage: storage, logger: logger.With(slog.String("component", "upload"))}
}

// Upload stores f under a fresh name and describes the result. Client
// mistakes are returned as *Error.
func (s *Service) Upload(ctx context.Context, f File) (core.Attachment, error) {
	kind := KindOf(f.ContentType)
	if kind == KindUnknown {
		return core.Attachment{}, badRequest(CodeInvalidType, "invalid file type: %s. Only images and videos are allowed", f.ContentType)
	}
	// read one byte past the cap so oversize files are detected
	data, err := io.ReadAll(io.LimitReader(f.Body, MaxSize(kind)+1))
	if err != nil {
		return core.Attachment{}, errors.Wrap(err, "read upload")
	}
	if uerr := Check(f.ContentType, data); uerr != nil {
		s.logger.WarnContext(ctx, "Upload rejected",
			slog.String("code", uerr.Code),
			slog.String("type", f.ContentType),
			slog.Int("size", len(data)),
		)
		return core.Attachment{}, uerr
	}

	folder := SanitizeFolder(f.Folder)
	name := uuid.NewString() + Extension(f.ContentType, f.OriginalName)
	ct := normalizeType(f.ContentType)

	url, err := s.storage.Put(ctx, folder, name, ct, data)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to store upload", slog.String("folder", folder), slog.Any("error", err))
		return core.Attachment{}, &Error{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeStorage,
			Message:    "failed to store file",
		}
	}

	s.logger.InfoContext(ctx, "File uploaded",
		slog.String("url", url),
		slog.Int("size", len(data)),
	)
	return core.Attachment{
		URL:          url,
		Filename:     name,
		OriginalName: f.OriginalName,
		Size:         int64(len(data)),
		Type:         ct,
	}, nil
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var uerr *Error
	if errors.As(errors.Cause(err), &uerr) {
		return uerr, true
	}
	return nil, false
}
