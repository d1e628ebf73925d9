package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks for values on a terminal. Reads respect context cancellation.
type Prompter struct {
	reader   *bufio.Reader
	writer   io.Writer
	secretFD int
	readMu   sync.Mutex
}

// NewPrompter creates a prompter reading from in and writing labels to out.
// Secrets are read without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		reader:   bufio.NewReader(in),
		writer:   out,
		secretFD: -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.secretFD = int(f.Fd())
	}
	return p
}

// Ask prints label and returns the trimmed answer. An empty answer yields def.
func (p *Prompter) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", label, def)
	}
	fmt.Fprint(p.writer, FormatPrompt(prompt))

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// AskSecret prints label and reads an answer without echoing it.
func (p *Prompter) AskSecret(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.writer, FormatPrompt(label))

	if p.secretFD < 0 {
		return p.readLine(ctx)
	}

	type result struct {
		err   error
		value []byte
	}
	ch := make(chan result, 1)
	go func() {
		value, err := term.ReadPassword(p.secretFD)
		ch <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-ch:
		fmt.Fprintln(p.writer)
		if res.err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), res.err)
		}
		return string(res.value), nil
	}
}

// readLine reads one line, returning early when ctx is canceled. The read
// itself keeps running until input arrives.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	ch := make(chan result, 1)

	go func() {
		p.readMu.Lock()
		defer p.readMu.Unlock()
		value, err := p.reader.ReadString('\n')
		ch <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-ch:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.value != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
