package resthttp

import (
	"strings"

	"github.com/sir_venger/images_lite/pkg/imagesproto"
)

// parseDownloadPath разбирает путь вида /download/<id>. Всё после префикса должно быть
// ровно одним идентификатором: лишние сегменты, слеши и посторонние символы отвергаются.
func parseDownloadPath(path string) (string, bool) {
	fileID, ok := strings.CutPrefix(path, imagesproto.PathDownloadPrefix)
	if !ok || !imagesproto.IsFileID(fileID) {
		return "", false
	}

	return fileID, true
}
