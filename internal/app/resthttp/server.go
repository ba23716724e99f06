package resthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/images_lite/internal/config"
	"github.com/sir_venger/images_lite/internal/usecase/filesvc"
	adapters "github.com/sir_venger/images_lite/internal/usecase/filesvc/adapters/storage"
	"github.com/sir_venger/images_lite/pkg/httperrors"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
	"go.uber.org/zap"
)

// Server обслуживает HTTP API сервиса: загрузку, выдачу файлов и индексную страницу.
// Единственное разделяемое состояние — неизменяемый FilesService.
type Server struct {
	FilesService filesvc.Service
	Logger       *zap.Logger
}

// NewServer создаёт корневой каталог хранилища и собирает HTTP-обработчик.
// Ошибка создания каталога должна прерывать старт сервиса.
func NewServer(cfg *config.Config, log *zap.Logger) (http.Handler, *Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	disk, err := adapters.NewDisk(cfg.FilesDir)
	if err != nil {
		return nil, nil, err
	}

	files := filesvc.New(filesvc.Deps{
		Storage:        disk,
		Logger:         log.Named("filesvc"),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := New(files, log)
	return srv.Routes(), srv, nil
}

// New конструктор поверх готового сервиса файлов.
func New(files filesvc.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		FilesService: files,
		Logger:       log,
	}
}

// Routes регистрирует обработчики. Неизвестный путь и неизвестный метод на известном пути дают 404.
func (s *Server) Routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(requestID, s.logRequests, s.recoverPanics)

	rtr.NotFound(notFound)
	rtr.MethodNotAllowed(notFound)

	rtr.Get(imagesproto.PathIndex, s.index)
	rtr.Post(imagesproto.PathUpload, s.upload)
	rtr.Get(imagesproto.PathDownloadPrefix+"*", s.download)

	return rtr
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	httperrors.Text(w, http.StatusNotFound, httperrors.MsgNotFound)
}
