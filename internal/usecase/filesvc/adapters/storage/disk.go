package adapters

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sir_venger/images_lite/internal/models"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
)

// Disk хранит файлы плоско в одном каталоге: имя файла совпадает с идентификатором.
type Disk struct {
	root string
}

// NewDisk создаёт корневой каталог (если его нет) и возвращает адаптер поверх него.
func NewDisk(root string) (*Disk, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &Disk{root: root}, nil
}

// Root возвращает корневой каталог хранилища.
func (d *Disk) Root() string {
	return d.root
}

// Create создаёт новый файл на запись. Существующий файл не перезаписывается.
func (d *Disk) Create(id string) (io.WriteCloser, error) {
	path, err := d.pathFor(id)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create %s: %w", id, models.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create %s: %w: %w", id, models.ErrIO, err)
	}

	return f, nil
}

// Open открывает существующий файл на чтение.
func (d *Disk) Open(id string) (models.StoredFile, error) {
	path, err := d.pathFor(id)
	if err != nil {
		return models.StoredFile{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.StoredFile{}, fmt.Errorf("open %s: %w", id, models.ErrNotFound)
		}
		return models.StoredFile{}, fmt.Errorf("open %s: %w: %w", id, models.ErrIO, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return models.StoredFile{}, fmt.Errorf("stat %s: %w: %w", id, models.ErrIO, err)
	}
	// Каталог с подходящим именем файлом не считается.
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return models.StoredFile{}, fmt.Errorf("open %s: %w", id, models.ErrNotFound)
	}

	return models.StoredFile{
		ID:      id,
		Size:    info.Size(),
		Content: f,
	}, nil
}

// Remove удаляет файл; отсутствие файла ошибкой не считается.
func (d *Disk) Remove(id string) error {
	path, err := d.pathFor(id)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w: %w", id, models.ErrIO, err)
	}

	return nil
}

func (d *Disk) pathFor(id string) (string, error) {
	if !imagesproto.IsFileID(id) {
		return "", fmt.Errorf("%q: %w", id, models.ErrBadRequest)
	}

	return filepath.Join(d.root, id), nil
}
