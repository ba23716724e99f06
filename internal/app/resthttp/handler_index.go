package resthttp

import (
	"io"
	"net/http"

	"github.com/sir_venger/images_lite/pkg/imagesproto"
)

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", imagesproto.ContentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, imagesproto.IndexBody)
}
