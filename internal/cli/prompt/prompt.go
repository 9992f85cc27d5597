// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/install"
	"github.com/thoreinstein/zcf/internal/tool"
)

// Sentinel errors for selection.
var (
	ErrNoChoices        = errors.New("nothing to select from")
	ErrInvalidSelection = errors.New("invalid selection")
)

// Prompter asks questions on a line-oriented terminal. It satisfies
// install.Prompter.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
	fuzzy  bool
}

var _ install.Prompter = (*Prompter)(nil)

// New returns a Prompter using stdin and stdout. Lists are shown in a
// fuzzy finder when stdin is a terminal.
func New() *Prompter {
	p := NewWithIO(os.Stdin, os.Stdout)
	p.fuzzy = term.IsTerminal(int(os.Stdin.Fd()))
	return p
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), writer: w}
}

// readLine returns the trimmed next line. io.EOF means the user closed
// the input.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Select asks the user to choose one of items and returns its index.
// ok is false when the user cancels. An empty answer picks def.
func (p *Prompter) Select(title string, items []string, def int) (idx int, ok bool, err error) {
	if len(items) == 0 {
		return 0, false, ErrNoChoices
	}
	if p.fuzzy {
		return p.selectFuzzy(title, items)
	}

	fmt.Fprintln(p.writer, title)
	for i, item := range items {
		fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, item)
	}
	fmt.Fprintf(p.writer, "Select [%d]: ", def+1)

	input, err := p.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.writer)
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "reading selection")
	}
	switch strings.ToLower(input) {
	case "":
		return def, true, nil
	case "q", "quit":
		return 0, false, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, false, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(items) {
		return 0, false, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(items))
	}
	return n - 1, true, nil
}

func (p *Prompter) selectFuzzy(title string, items []string) (int, bool, error) {
	idx, err := fuzzyfinder.Find(items,
		func(i int) string { return items[i] },
		fuzzyfinder.WithHeader(title),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "interactive selection failed")
	}
	return idx, true, nil
}

// Confirm asks a yes/no question. An empty answer or closed input
// returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	return p.confirm(question, def, def)
}

// confirm is Confirm with a separate answer for closed input.
func (p *Prompter) confirm(question string, def, closed bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.writer, "%s [%s]: ", question, hint)

	input, err := p.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.writer)
		return closed, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "reading answer")
	}
	switch strings.ToLower(input) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidSelection, "answer %q with y or n", input)
}

// SelectMethod implements install.Prompter.
func (p *Prompter) SelectMethod(t tool.Tool, options []install.MethodOption) (tool.Method, bool, error) {
	items := make([]string, len(options))
	def := 0
	for i, o := range options {
		items[i] = string(o.Method)
		if o.Recommended {
			items[i] += " (recommended)"
			def = i
		}
	}
	idx, ok, err := p.Select(fmt.Sprintf("Install %s with:", tool.MustInfo(t).DisplayName), items, def)
	if err != nil || !ok {
		return "", false, err
	}
	return options[idx].Method, true, nil
}

// ConfirmRetry implements install.Prompter. An empty answer retries;
// closed input declines.
func (p *Prompter) ConfirmRetry(t tool.Tool, failed tool.Method, cause error) (bool, error) {
	fmt.Fprintf(p.writer, "✖ Installing %s with %s failed: %v\n", tool.MustInfo(t).DisplayName, failed, cause)
	return p.confirm("Try another method?", true, false)
}
