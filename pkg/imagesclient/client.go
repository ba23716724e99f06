// Package imagesclient — HTTP-клиент сервиса хранения файлов.
package imagesclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sir_venger/images_lite/pkg/imagesproto"
)

var (
	ErrNotFound  = errors.New("file not found")
	ErrInvalidID = errors.New("invalid file id")
)

// StatusError — неуспешный ответ сервера с его текстовым телом.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type Client struct {
	base     string
	c        *http.Client
	progress io.Writer
}

type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.c = c
	}
}

// WithProgress включает отрисовку прогресса передачи в w.
func WithProgress(w io.Writer) Option {
	return func(cl *Client) {
		cl.progress = w
	}
}

// New создаёт клиент для сервиса по базовому URL вида http://host:port.
func New(baseURL string, opts ...Option) *Client {
	cl := &Client{
		base: strings.TrimRight(baseURL, "/"),
		c:    &http.Client{},
	}
	for _, opt := range opts {
		opt(cl)
	}

	return cl
}

// Index возвращает тело индексной страницы.
func (h *Client) Index(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+imagesproto.PathIndex, nil)
	if err != nil {
		return "", err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return string(body), nil
}

// Upload загружает r и возвращает выданный сервером идентификатор.
// size < 0 — длина неизвестна, тело уходит chunked.
func (h *Client) Upload(ctx context.Context, r io.Reader, size int64) (string, error) {
	var bar *progressBar
	body := r
	if h.progress != nil {
		bar = newProgressBar(h.progress, "Uploading", size)
		body = io.TeeReader(r, progressWriter{bar: bar})
	}

	fileID, err := h.upload(ctx, body, size)
	if err != nil {
		bar.Fail(err)
		return "", err
	}
	bar.Finish()

	return fileID, nil
}

func (h *Client) upload(ctx context.Context, body io.Reader, size int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+imagesproto.PathUpload, body)
	if err != nil {
		return "", err
	}
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}
	req.Header.Set("Content-Type", imagesproto.ContentTypeBinary)

	resp, err := h.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Идентификатор короткий; больше читать незачем.
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	fileID := string(b)
	if !imagesproto.IsFileID(fileID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, fileID)
	}

	return fileID, nil
}

// Download возвращает поток с содержимым файла. Закрывает поток вызывающий.
func (h *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if !imagesproto.IsFileID(fileID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, fileID)
	}

	u := fmt.Sprintf(imagesproto.DownloadPathFormat, h.base, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", fileID, ErrNotFound)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	if h.progress == nil {
		return resp.Body, nil
	}

	bar := newProgressBar(h.progress, "Downloading "+fileID, resp.ContentLength)
	bar.render(true, "")
	return newProgressReadCloser(resp.Body, bar), nil
}
