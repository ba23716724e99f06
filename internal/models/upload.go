package models

// UploadResult возвращается после успешной загрузки.
type UploadResult struct {
	FileID string
	Size   int64
}
