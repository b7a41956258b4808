package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

type inputResult struct {
	text string
	err  error
}

// lineReader reads lines on a background goroutine so that Input can honour
// context cancellation while the read itself blocks.
type lineReader struct {
	reader    *bufio.Reader
	inputChan chan inputResult
	startOnce sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

func (l *lineReader) initPump() {
	l.startOnce.Do(func() {
		l.inputChan = make(chan inputResult)
		go l.pump()
	})
}

func (l *lineReader) pump() {
	for {
		text, err := l.reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			l.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(l.inputChan)
				return
			}
			l.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// next returns the next line without its line ending. Other whitespace is kept so the
// terminal history records what was typed. onReject is told about lines that fail
// SanitizeInput and the read is retried.
func (l *lineReader) next(ctx context.Context, onReject func(error)) (string, error) {
	l.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-l.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(strings.TrimRight(res.text, "\r\n"))
			if err != nil {
				onReject(err)
				continue
			}
			return clean, nil
		}
	}
}
