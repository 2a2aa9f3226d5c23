package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

type readResult struct {
	line string
	err  error
}

// Reader reads lines from an io.Reader without blocking past context
// cancellation. A read abandoned by cancellation is handed to the next call
// rather than started twice.
type Reader struct {
	rd      *bufio.Reader
	pending chan readResult
}

func NewReader(rd io.Reader) *Reader {
	return &Reader{rd: bufio.NewReader(rd)}
}

// ReadLine returns the next line without its terminator. A final line that
// is not newline-terminated is returned before io.EOF.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	if r.pending == nil {
		ch := make(chan readResult, 1)
		r.pending = ch

		go func() {
			line, err := r.rd.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-r.pending:
		r.pending = nil
		if res.err != nil && (!errors.Is(res.err, io.EOF) || res.line == "") {
			return "", res.err
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
