// Package prompt reads line-oriented answers from an interactive user.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// MaxLineLength is the longest answer, in bytes, that Ask returns.
const MaxLineLength = 1 << 20

var (
	// ErrInputClosed is returned once the input reaches EOF or the Prompter is closed.
	ErrInputClosed = errors.New("input closed")
	// ErrLineTooLong is returned for an answer longer than MaxLineLength.
	// The line is discarded and the next Ask reads the following one.
	ErrLineTooLong = errors.New("input line too long")
	// ErrReadFailed wraps a read error other than EOF. The input is closed after it.
	ErrReadFailed = errors.New("failed to read input")
)

type answer struct {
	line string
	err  error
}

// Prompter writes a prompt and reads one line of user input.
// Lines are pumped by a background goroutine so a pending read can be
// abandoned when the context is cancelled.
type Prompter struct {
	answers <-chan answer
	out     io.Writer

	done      chan struct{}
	closeOnce sync.Once
	exited    chan struct{}
}

// New starts reading lines from in. The reader goroutine exits when in reaches EOF
// or, at the latest after its current read, once Close is called.
func New(in io.Reader, out io.Writer) *Prompter {
	answers := make(chan answer)
	p := &Prompter{
		answers: answers,
		out:     out,
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go p.pump(bufio.NewReader(in), answers)
	return p
}

func (p *Prompter) pump(r *bufio.Reader, answers chan<- answer) {
	defer close(p.exited)
	defer close(answers)
	for {
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return
		}
		fatal := err != nil && !errors.Is(err, ErrLineTooLong)
		if fatal {
			err = fmt.Errorf("%w: %w", ErrReadFailed, err)
		}
		select {
		case answers <- answer{line: line, err: err}:
		case <-p.done:
			return
		}
		if fatal {
			return
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// MaxLineLength is consumed entirely and reported as ErrLineTooLong.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	started, tooLong := false, false
	for {
		fragment, isPrefix, err := r.ReadLine()
		if err != nil {
			if !started {
				return "", err
			}
			break
		}
		started = true
		if !tooLong {
			if len(buf)+len(fragment) > MaxLineLength {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, fragment...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return string(buf), nil
}

// Ask prints label and waits for the next input line, without its line terminator.
// Returns ErrInputClosed once the input is exhausted, ErrLineTooLong or ErrReadFailed
// for a bad line, or ctx.Err() on cancellation.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", ErrInputClosed
	case a, ok := <-p.answers:
		if !ok {
			return "", ErrInputClosed
		}
		return a.line, a.err
	}
}

// Close stops the reader goroutine. Unread input is dropped.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}
