package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when stdin ends while an answer is expected.
var ErrInputClosed = errors.New("input closed")

// Prompt reads one line per question from in and writes questions and
// messages to out.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Ask prints question and returns the answer without its line ending. A last
// line with no newline is still returned; after that Ask reports ErrInputClosed.
func (p *Prompt) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read: %w", err)
		}
		if line == "" {
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Say writes msg and a newline.
func (p *Prompt) Say(msg string) {
	fmt.Fprintln(p.out, msg)
}
