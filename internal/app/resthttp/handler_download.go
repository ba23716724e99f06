package resthttp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sir_venger/images_lite/internal/models"
	"github.com/sir_venger/images_lite/pkg/httperrors"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
	"go.uber.org/zap"
)

// download отдаёт содержимое файла потоком. Путь проверяется до любого обращения к диску.
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	fileID, ok := parseDownloadPath(r.URL.Path)
	if !ok {
		httperrors.Write(w, models.ErrBadRequest)
		return
	}

	file, err := s.FilesService.Open(r.Context(), fileID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTransport):
			abort()
		case errors.Is(err, models.ErrNotFound):
			s.requestLogger(r).Debug("file not found", zap.String("file_id", fileID))
		default:
			s.requestLogger(r).Error("open failed", zap.String("file_id", fileID), zap.Error(err))
		}
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", imagesproto.ContentTypeBinary)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.WriteHeader(http.StatusOK)

	// Заголовки уже ушли: статус не поменять, остаётся только оборвать ответ.
	if _, err = s.FilesService.Send(r.Context(), file, w); err != nil {
		s.requestLogger(r).Warn("download aborted", zap.String("file_id", fileID), zap.Error(err))
		abort()
	}
}
