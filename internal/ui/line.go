package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type lineResult struct {
	line string
	err  error
}

// LinePrompter reads plain lines, for pipes and dumb terminals.
//
// A single goroutine reads the input for the prompter's lifetime, so a line
// typed after a prompt timed out is delivered to the next prompt.
type LinePrompter struct {
	in    io.Reader
	out   io.Writer
	lines chan lineResult
	start sync.Once
}

// NewLinePrompter creates a prompter reading from in and writing to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out, lines: make(chan lineResult)}
}

func (p *LinePrompter) read() {
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		p.lines <- lineResult{line: strings.TrimRight(scanner.Text(), "\r")}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	// Keep answering with the terminal error.
	for {
		p.lines <- lineResult{err: err}
	}
}

// Show prints the page.
func (p *LinePrompter) Show(page Page) {
	fmt.Fprintln(p.out)
	if page.Title != "" {
		fmt.Fprintf(p.out, "== %s ==\n\n", page.Title)
	}
	for _, l := range page.Lines {
		fmt.Fprintln(p.out, l.Text)
	}
	if page.Status.Text != "" {
		fmt.Fprintf(p.out, "\n%s\n", page.Status.Text)
	}
}

// ReadLine prints the prompt and waits for a line, the deadline or ctx.
// End of input is treated as a request to quit.
func (p *LinePrompter) ReadLine(ctx context.Context, prompt string, budget time.Duration) (string, error) {
	p.start.Do(func() { go p.read() })

	var timeout <-chan time.Time
	if budget > 0 {
		t := time.NewTimer(budget)
		defer t.Stop()
		timeout = t.C
		fmt.Fprintf(p.out, "[%ds] %s\n> ", int((budget+time.Second-1)/time.Second), prompt)
	} else {
		fmt.Fprintf(p.out, "%s\n> ", prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timeout:
		fmt.Fprintln(p.out, "\nOut of time!")
		return "", ErrTimeout
	case res := <-p.lines:
		if res.err != nil {
			return "", ErrQuit
		}
		if isQuit(res.line) {
			return "", ErrQuit
		}
		return res.line, nil
	}
}

// Close is a no-op; the input belongs to the caller.
func (p *LinePrompter) Close() error {
	return nil
}
