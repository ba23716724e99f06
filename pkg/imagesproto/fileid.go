package imagesproto

import "math/rand/v2"

const (
	// FileIDLength — длина идентификатора файла в символах.
	FileIDLength = 20

	fileIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NewFileID генерирует случайный идентификатор из FileIDLength алфавитно-цифровых символов.
// Идентификатор — ключ хранения, а не секрет, поэтому криптостойкий источник не нужен.
func NewFileID() string {
	b := make([]byte, FileIDLength)
	for i := range b {
		b[i] = fileIDAlphabet[rand.IntN(len(fileIDAlphabet))]
	}

	return string(b)
}

// IsFileID проверяет длину и класс каждого символа. Строка, прошедшая проверку,
// не может содержать разделителей пути или "..".
func IsFileID(s string) bool {
	if len(s) != FileIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}

	return true
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
