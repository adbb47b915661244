package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/questx-lab/nftgallery/internal/model"
)

const lamportsPerSOL = 1_000_000_000

type answer struct {
	line string
	err  error
}

// terminalConfirmer reads answers with a single goroutine that lives as long
// as in, so a prompt cancelled by ctx never leaves a second reader behind.
// Lines are handed out in order, one per Confirm.
type terminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer

	once    sync.Once
	answers chan answer
}

// NewTerminalConfirmer asks the user on out and reads the answer from in.
func NewTerminalConfirmer(in io.Reader, out io.Writer) *terminalConfirmer {
	return &terminalConfirmer{
		in:      bufio.NewReader(in),
		out:     out,
		answers: make(chan answer),
	}
}

func (c *terminalConfirmer) Confirm(ctx context.Context, prompt model.MintPrompt) (bool, error) {
	c.once.Do(func() { go c.readAnswers() })

	printPrompt(c.out, prompt)
	fmt.Fprint(c.out, "Do you want to continue? [y/N]: ")

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a, ok := <-c.answers:
		if !ok {
			return false, nil
		}

		if a.err != nil {
			return false, a.err
		}

		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// readAnswers closes answers once in is exhausted, every later Confirm then
// declines.
func (c *terminalConfirmer) readAnswers() {
	defer close(c.answers)

	for {
		line, err := c.in.ReadString('\n')
		if line != "" {
			c.answers <- answer{line: line}
		}

		if err != nil {
			if err != io.EOF {
				c.answers <- answer{err: err}
			}
			return
		}
	}
}

type autoConfirmer struct {
	out io.Writer
}

// NewAutoConfirmer accepts every prompt after printing it.
func NewAutoConfirmer(out io.Writer) *autoConfirmer {
	return &autoConfirmer{out: out}
}

func (c *autoConfirmer) Confirm(ctx context.Context, prompt model.MintPrompt) (bool, error) {
	printPrompt(c.out, prompt)
	return true, nil
}

func printPrompt(out io.Writer, prompt model.MintPrompt) {
	fmt.Fprintf(out, "Mint %q\n", prompt.SlotName)
	fmt.Fprintln(out, prompt.Warning)

	if prompt.BalanceKnown {
		fmt.Fprintf(out, "Balance: %s SOL, estimated cost: %s SOL\n",
			FormatSOL(prompt.Balance), FormatSOL(prompt.EstimatedCost))
		if !prompt.Sufficient {
			fmt.Fprintln(out, "Your balance looks too low for this transaction.")
		}
	} else {
		fmt.Fprintf(out, "Estimated cost: %s SOL\n", FormatSOL(prompt.EstimatedCost))
	}
}

func FormatSOL(lamports uint64) string {
	whole := lamports / lamportsPerSOL
	frac := lamports % lamportsPerSOL
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}

	return strings.TrimRight(fmt.Sprintf("%d.%09d", whole, frac), "0")
}
