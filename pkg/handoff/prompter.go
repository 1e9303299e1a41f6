package handoff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter shows a pending blob to the operator and collects the signature.
type Prompter interface {
	Present(p *Pending) error
	ReadSignature() (string, error)
}

// Outcome is the result of waiting for the signer. Cancelled is set when
// the operator supplied nothing; it is not an error.
type Outcome struct {
	Signature string
	Cancelled bool
}

// Await presents p and blocks until the operator answers. There is no
// timeout.
func Await(pr Prompter, p *Pending) (Outcome, error) {
	if err := pr.Present(p); err != nil {
		return Outcome{}, err
	}
	sig, err := pr.ReadSignature()
	if err != nil {
		return Outcome{}, err
	}
	return OutcomeOf(sig), nil
}

// OutcomeOf interprets a signature supplied by other means, such as a
// command line argument. Blank input cancels.
func OutcomeOf(sig string) Outcome {
	sig = strings.TrimSpace(sig)
	if sig == "" {
		return Outcome{Cancelled: true}
	}
	return Outcome{Signature: sig}
}

// ConsolePrompter prints to Out and reads one line from In.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer

	r *bufio.Reader
}

// NewConsolePrompter returns a prompter on stdin and stdout.
func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{In: os.Stdin, Out: os.Stdout}
}

func (c *ConsolePrompter) Present(p *Pending) error {
	_, err := fmt.Fprintf(c.Out, "Transaction %s\n%d inputs, %d outputs, fee %s\n\n%s\n\n",
		p.ID, len(p.Inputs), len(p.Outputs), p.Fee.HumanString(), p.Blob)
	if err != nil {
		return err
	}
	if c.interactive() {
		_, err = fmt.Fprint(c.Out, "Sign the blob above and paste the signature (empty line cancels): ")
	}
	return err
}

// ReadSignature reads a single line. EOF before any data yields "".
func (c *ConsolePrompter) ReadSignature() (string, error) {
	if c.r == nil {
		c.r = bufio.NewReader(c.In)
	}
	line, err := c.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *ConsolePrompter) interactive() bool {
	f, ok := c.In.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
