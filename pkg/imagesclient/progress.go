package imagesclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 30
	progressRenderPeriod = 100 * time.Millisecond
)

// progressBar рисует однострочный ASCII-индикатор передачи в out.
// Все методы безопасны для nil-получателя: отключённый прогресс — это просто nil.
type progressBar struct {
	mu         sync.Mutex
	out        io.Writer
	prefix     string
	total      int64
	current    int64
	lastRender time.Time
	lastWidth  int
	finished   bool
}

func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	return &progressBar{
		out:    out,
		prefix: prefix,
		total:  total,
	}
}

func (p *progressBar) Add(n int64) {
	if p == nil || n <= 0 {
		return
	}

	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.current += n
	p.mu.Unlock()

	p.render(false, "")
}

// render перерисовывает строку не чаще progressRenderPeriod, если не force.
func (p *progressBar) render(force bool, suffix string) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished && !force {
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		return
	}
	p.lastRender = now
	p.writeLocked(suffix, "")
}

func (p *progressBar) writeLocked(suffix, end string) {
	line := p.lineLocked() + suffix
	padding := ""
	if p.lastWidth > len(line) {
		padding = strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)

	_, _ = fmt.Fprintf(p.out, "\r%s%s%s", line, padding, end)
}

func (p *progressBar) lineLocked() string {
	var b strings.Builder
	b.WriteString(p.prefix)
	b.WriteByte(' ')

	if p.total <= 0 {
		b.WriteString(humanBytes(p.current))
		b.WriteString(" transferred")
		return b.String()
	}

	ratio := float64(p.current) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * progressBarWidth)

	b.WriteByte('[')
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", progressBarWidth-filled))
	fmt.Fprintf(&b, "] %3d%% %s/%s", int(ratio*100), humanBytes(p.current), humanBytes(p.total))

	return b.String()
}

func (p *progressBar) Finish() {
	p.complete(nil)
}

func (p *progressBar) Fail(err error) {
	if err == nil {
		err = fmt.Errorf("failed")
	}
	p.complete(err)
}

func (p *progressBar) complete(err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true

	suffix := " done"
	if err != nil {
		suffix = fmt.Sprintf(" failed: %v", err)
	}
	p.writeLocked(suffix, "\n")
}

type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(b []byte) (int, error) {
	w.bar.Add(int64(len(b)))
	return len(b), nil
}

// progressReadCloser считает прочитанные байты и закрывает индикатор на EOF, ошибке или Close.
type progressReadCloser struct {
	inner io.ReadCloser
	bar   *progressBar
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	return &progressReadCloser{inner: inner, bar: bar}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.bar.Add(int64(n))
	switch {
	case err == io.EOF:
		p.bar.Finish()
	case err != nil:
		p.bar.Fail(err)
	}

	return n, err
}

func (p *progressReadCloser) Close() error {
	err := p.inner.Close()
	if err != nil {
		p.bar.Fail(err)
	} else {
		p.bar.Finish()
	}

	return err
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[0])
	}

	return fmt.Sprintf("%.1f %s", value, units[unit])
}
