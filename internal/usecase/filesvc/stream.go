package filesvc

import (
	"context"
	"fmt"
	"io"

	"github.com/sir_venger/images_lite/internal/models"
)

// Open открывает файл на чтение. Ошибка возвращается до того, как что-либо записано клиенту.
func (s *Files) Open(ctx context.Context, fileID string) (models.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", models.ErrTransport, err)
	}

	return s.Storage.Open(fileID)
}

// Send потоково отдаёт содержимое файла в w и всегда закрывает файл.
func (s *Files) Send(ctx context.Context, file models.StoredFile, w io.Writer) (int64, error) {
	defer file.Content.Close()

	n, err := copyChunks(ctx, w, file.Content, make([]byte, s.ChunkSize), models.ErrIO, models.ErrTransport, models.ErrTransport)
	if err != nil {
		return n, fmt.Errorf("send %s: %w", file.ID, err)
	}

	return n, nil
}
