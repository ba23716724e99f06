// Package httperrors переводит ошибки сервиса в HTTP-статус и короткое текстовое тело.
// Детали исходной ошибки (пути, errno) наружу не попадают.
package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/images_lite/internal/models"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
)

const (
	MsgInvalidPath  = "Invalid download path"
	MsgFileNotFound = "File not found"
	MsgCreateFailed = "Failed to create file"
	MsgStorage      = "Storage failure"
	MsgTooLarge     = "File too large"
	MsgInternal     = "Internal server error"
	MsgNotFound     = "Not found"
)

// Status возвращает код ответа и тело для ошибки.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusNotFound, MsgInvalidPath
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, MsgFileNotFound
	case errors.Is(err, models.ErrAlreadyExists):
		return http.StatusInternalServerError, MsgCreateFailed
	case errors.Is(err, models.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, MsgTooLarge
	case errors.Is(err, models.ErrIO):
		return http.StatusInternalServerError, MsgStorage
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

func Write(w http.ResponseWriter, err error) {
	code, msg := Status(err)
	Text(w, code, msg)
}

// Text пишет plain-text ответ с заданным статусом.
func Text(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", imagesproto.ContentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
