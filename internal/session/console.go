package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console is a LineIO over a reader and a writer, normally stdin and stdout.
type Console struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan consoleLine
}

type consoleLine struct {
	text string
	err  error
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out, lines: make(chan consoleLine)}
}

// ReadLine returns the next input line without its line terminator. It stops
// waiting when ctx is cancelled.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.once.Do(func() { go c.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return line.text, nil
	}
}

func (c *Console) WriteLine(line string) error {
	_, err := fmt.Fprintln(c.out, line)
	return err
}

func (c *Console) scan() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- consoleLine{text: strings.TrimRight(scanner.Text(), "\r")}
	}
	if err := scanner.Err(); err != nil {
		c.lines <- consoleLine{err: err}
	}
}
