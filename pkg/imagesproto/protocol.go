// Package imagesproto описывает HTTP-протокол сервиса хранения файлов: пути, служебные тела
// ответов и формат идентификатора, который сервер выдаёт при загрузке.
package imagesproto

// Параметры REST-протокола сервиса.
const (
	PathIndex          = "/"
	PathUpload         = "/upload"
	PathDownloadPrefix = "/download/"
	DownloadPathFormat = "%s" + PathDownloadPrefix + "%s"

	// IndexBody отдаётся на GET / и позволяет опознать сервис.
	IndexBody = "Images Microservice"

	ContentTypeText   = "text/plain; charset=utf-8"
	ContentTypeBinary = "application/octet-stream"
	HeaderRequestID   = "X-Request-ID"
)
