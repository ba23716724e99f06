package resthttp

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sir_venger/images_lite/pkg/httperrors"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
	"go.uber.org/zap"
)

type ctxKey struct{}

// requestID берёт X-Request-ID клиента или генерирует новый и возвращает его в ответе.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(imagesproto.HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(imagesproto.HeaderRequestID, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return s.Logger.With(zap.String("request_id", requestIDFrom(r.Context())))
}

// abort обрывает ответ без дальнейших записей; net/http закроет соединение.
func abort() {
	panic(http.ErrAbortHandler)
}

// logRequests пишет одну запись на запрос, в том числе на оборванный.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			rvr := recover()

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := s.requestLogger(r).With(
				zap.String("http_method", r.Method),
				zap.String("http_path", r.URL.Path),
				zap.Int("http_status_code", status),
				zap.Int("bytes_written", ww.BytesWritten()),
				zap.Int64("request_size", r.ContentLength),
				zap.Duration("duration", time.Since(start)),
			)

			switch {
			case rvr != nil:
				log.Warn("request aborted")
			case status >= http.StatusInternalServerError:
				log.Error("request failed")
			case status >= http.StatusBadRequest:
				log.Warn("request rejected")
			default:
				log.Info("request processed")
			}

			if rvr != nil {
				panic(rvr)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

// recoverPanics превращает панику обработчика в 500, не затрагивая остальные запросы.
// http.ErrAbortHandler пробрасывается дальше — это штатный обрыв ответа.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			stack := make([]byte, 4096)
			stack = stack[:runtime.Stack(stack, false)]
			s.requestLogger(r).Error("recovered from panic",
				zap.Any("panic_message", rvr),
				zap.ByteString("stack_trace", stack),
			)

			httperrors.Text(w, http.StatusInternalServerError, httperrors.MsgInternal)
		}()

		next.ServeHTTP(w, r)
	})
}
