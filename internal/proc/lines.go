package proc

import (
	"bufio"
	"io"
	"strings"
)

// WatchLines reads newline-terminated chunks from r and calls emit once per
// line with the trailing newline stripped. A partial trailing line is held
// back until its newline arrives; data still unterminated at EOF is dropped.
// Blocks until EOF or a read error, so callers run it on its own goroutine.
func WatchLines(r io.Reader, emit func(string)) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if strings.HasSuffix(line, "\n") {
			emit(strings.TrimSuffix(line, "\n"))
		}
		if err != nil {
			return
		}
	}
}
