package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"memmet/internal/logging"
)

// promptConfirmer asks on the terminal before an existing output is replaced.
// An empty answer or end of input declines.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out, tty: logging.IsTerminal(in)}
}

func (p *promptConfirmer) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(p.out, "%s already exists. Overwrite? [y/N] ", path)
		line, err := p.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && answer == "" {
			if err == io.EOF {
				if !p.tty {
					fmt.Fprintln(p.out)
				}
				return false, nil
			}
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch answer {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}
