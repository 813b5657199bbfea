// Package prompt abstracts interactive input as an ordered source of
// strings. The pipeline asks for five names and later for a yes/no decision
// and a file name; tests feed those from a slice.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmgilman/studentfiles/errors"
)

// ErrExhausted is returned when a source has no more input.
var ErrExhausted = errors.New(errors.CodeInputUnavailable, "input source exhausted")

// Source produces input strings on demand. label is the question being
// asked; sources that talk to a person show it, others ignore it.
type Source interface {
	Next(ctx context.Context, label string) (string, error)
}

// SliceSource returns preset answers in order.
type SliceSource struct {
	answers []string
	pos     int
}

// NewSliceSource creates a source that answers with the given values in order.
func NewSliceSource(answers ...string) *SliceSource {
	return &SliceSource{answers: answers}
}

// Next returns the next preset answer, or ErrExhausted.
func (s *SliceSource) Next(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.CodeInputUnavailable, "input cancelled")
	}
	if s.pos >= len(s.answers) {
		return "", exhausted(label)
	}
	answer := s.answers[s.pos]
	s.pos++
	return answer, nil
}

// Remaining reports how many answers are left.
func (s *SliceSource) Remaining() int {
	return len(s.answers) - s.pos
}

// ReaderSource reads one line per answer from a reader, optionally writing
// the label to an output first.
type ReaderSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewReaderSource creates a line-oriented source. If out is nil, labels are
// not shown.
func NewReaderSource(in io.Reader, out io.Writer) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(in), out: out}
}

// NewStdinSource reads from standard input. Labels are written to stdout
// only when stdin is a terminal, so piped input does not echo prompts.
func NewStdinSource() *ReaderSource {
	var out io.Writer
	if term.IsTerminal(int(os.Stdin.Fd())) {
		out = os.Stdout
	}
	return NewReaderSource(os.Stdin, out)
}

// Next shows label and returns the next line without its line terminator.
func (r *ReaderSource) Next(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.CodeInputUnavailable, "input cancelled")
	}
	if r.out != nil && label != "" {
		if _, err := fmt.Fprint(r.out, label); err != nil {
			return "", errors.Wrap(err, errors.CodeInputUnavailable, "failed to show prompt")
		}
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", errors.Wrap(err, errors.CodeInputUnavailable, "failed to read input")
		}
		return "", exhausted(label)
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

func exhausted(label string) error {
	return errors.WrapWithContext(ErrExhausted, errors.CodeInputUnavailable, "no answer available",
		map[string]interface{}{"prompt": label})
}
