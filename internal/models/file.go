package models

import "io"

// StoredFile — открытый на чтение файл из хранилища. Content закрывает вызывающий.
type StoredFile struct {
	ID      string
	Size    int64
	Content io.ReadCloser
}
