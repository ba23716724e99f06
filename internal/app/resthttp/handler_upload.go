package resthttp

import (
	"errors"
	"io"
	"net/http"

	"github.com/sir_venger/images_lite/internal/models"
	"github.com/sir_venger/images_lite/pkg/httperrors"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
	"go.uber.org/zap"
)

// upload потоково сохраняет тело запроса и отвечает идентификатором — единственным
// способом потом получить файл обратно.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	res, err := s.FilesService.Upload(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, models.ErrTransport) {
			s.requestLogger(r).Warn("upload aborted", zap.Error(err))
			abort()
		}
		s.requestLogger(r).Error("upload failed", zap.Error(err))
		httperrors.Write(w, err)
		return
	}

	s.requestLogger(r).Debug("file stored", zap.String("file_id", res.FileID), zap.Int64("size", res.Size))

	w.Header().Set("Content-Type", imagesproto.ContentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.FileID)
}
