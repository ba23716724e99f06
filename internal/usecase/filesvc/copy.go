package filesvc

import (
	"context"
	"fmt"
	"io"
)

// copyChunks переносит src в dst порциями размера len(buf), сохраняя порядок байт.
// Ошибки чтения оборачиваются в readKind, ошибки записи — в writeKind, отмена
// контекста — в cancelKind. Между порциями проверяется ctx.
func copyChunks(ctx context.Context, dst io.Writer, src io.Reader, buf []byte, readKind, writeKind, cancelKind error) (int64, error) {
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w: %w", cancelKind, err)
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, fmt.Errorf("%w: %w", writeKind, werr)
			}
			if wn != n {
				return written, fmt.Errorf("%w: %w", writeKind, io.ErrShortWrite)
			}
		}

		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: %w", readKind, rerr)
		}
	}
}
