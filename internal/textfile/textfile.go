// Package textfile reads the newline-delimited plain-text inputs shared by the
// lexcheck tools (confusable tables, expression lists, dumps).
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// ReadLines returns every line of r with its terminator removed. Both "\n" and
// "\r\n" end a line; no other whitespace is touched. A final line without a
// terminator is kept, a trailing terminator does not produce an empty line.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, trimTerminator(line))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, err
		}
	}
}

// LoadLines opens path and reads it with ReadLines. Failures to open or read
// wrap internalerr.ErrUnreadable and name the path.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrUnreadable, path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrUnreadable, path, err)
	}
	return lines, nil
}

func trimTerminator(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	line = line[:len(line)-1]
	return strings.TrimSuffix(line, "\r")
}
