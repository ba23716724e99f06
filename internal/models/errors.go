package models

import "errors"

var (
	ErrBadRequest    = errors.New("invalid file id")
	ErrNotFound      = errors.New("file not found")
	ErrAlreadyExists = errors.New("file already exists")
	ErrIO            = errors.New("storage i/o failure")
	ErrTooLarge      = errors.New("file too large")
	// ErrTransport — обрыв соединения с клиентом или ошибка чтения тела посреди потока.
	ErrTransport = errors.New("transport failure")
)
