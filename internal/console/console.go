package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Handler processes one line for a session and returns the reply.
type Handler func(sessionKey, command string) string

// Console is a line-oriented front end over a single session.
type Console struct {
	SessionKey string
	In         io.Reader
	Out        io.Writer
}

// New creates a Console with a fresh session key.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{SessionKey: "cli:" + uuid.NewString(), In: in, Out: out}
}

// Run dispatches each input line to handler until EOF or ctx is cancelled.
func (c *Console) Run(ctx context.Context, handler Handler) error {
	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	fmt.Fprint(c.Out, "> ")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errCh:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				fmt.Fprint(c.Out, "> ")
				continue
			}
			if line == "/quit" || line == "quit" {
				return nil
			}
			fmt.Fprintln(c.Out, handler(c.SessionKey, line))
			fmt.Fprint(c.Out, "> ")
		}
	}
}
