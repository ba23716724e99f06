package filesvc

import (
	"context"
	"io"

	"github.com/sir_venger/images_lite/internal/models"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
	"go.uber.org/zap"
)

// DefaultChunkSize — размер порции при копировании тела запроса в файл и файла в ответ.
const DefaultChunkSize = 32 << 10

type (
	// Storage — плоское файловое хранилище с ключом-идентификатором.
	Storage interface {
		Create(id string) (io.WriteCloser, error)
		Open(id string) (models.StoredFile, error)
		Remove(id string) error
	}

	// Service объединяет операции по загрузке и выдаче файлов.
	Service interface {
		Upload(ctx context.Context, r io.Reader) (models.UploadResult, error)
		Open(ctx context.Context, fileID string) (models.StoredFile, error)
		Send(ctx context.Context, file models.StoredFile, w io.Writer) (int64, error)
	}
)

type Deps struct {
	Storage Storage
	// NewID по умолчанию imagesproto.NewFileID.
	NewID          func() string
	Logger         *zap.Logger
	ChunkSize      int
	MaxUploadBytes int64
}

// Files — реализация Service. Все поля неизменяемы после New, поэтому
// один экземпляр обслуживает любое число параллельных запросов.
type Files struct {
	Deps
}

// New конструирует сервис с заданными зависимостями, подставляя дефолты.
func New(deps Deps) *Files {
	if deps.NewID == nil {
		deps.NewID = imagesproto.NewFileID
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.ChunkSize <= 0 {
		deps.ChunkSize = DefaultChunkSize
	}

	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)
