package filesvc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sir_venger/images_lite/internal/models"
	"go.uber.org/zap"
)

// Upload генерирует идентификатор, создаёт под него файл и потоково пишет в него r.
// Недописанный файл удаляется, так что каждый выданный идентификатор указывает на полный файл.
func (s *Files) Upload(ctx context.Context, r io.Reader) (models.UploadResult, error) {
	fileID := s.NewID()

	w, err := s.Storage.Create(fileID)
	if err != nil {
		return models.UploadResult{}, err
	}

	src := r
	if s.MaxUploadBytes > 0 {
		// Читаем на байт больше лимита, чтобы отличить "ровно лимит" от превышения.
		src = io.LimitReader(r, s.MaxUploadBytes+1)
	}

	n, err := copyChunks(ctx, w, src, make([]byte, s.ChunkSize), models.ErrTransport, models.ErrIO, models.ErrTransport)
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close: %w: %w", models.ErrIO, closeErr)
	}
	if err == nil && s.MaxUploadBytes > 0 && n > s.MaxUploadBytes {
		err = fmt.Errorf("limit %d bytes: %w", s.MaxUploadBytes, models.ErrTooLarge)
	}

	if err != nil {
		s.discard(fileID)
		return models.UploadResult{}, fmt.Errorf("upload %s: %w", fileID, err)
	}

	return models.UploadResult{FileID: fileID, Size: n}, nil
}

// discard удаляет частично записанный файл.
func (s *Files) discard(fileID string) {
	if err := s.Storage.Remove(fileID); err != nil && !errors.Is(err, models.ErrNotFound) {
		s.Logger.Warn("failed to remove partial upload", zap.String("file_id", fileID), zap.Error(err))
	}
}
