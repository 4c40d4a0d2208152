package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	ai "github.com/zootherapy/menagerie"
)

// Prompt is written before each line of input.
const Prompt = "> "

// REPL runs an interactive conversation on a new session, reading one user
// message per line from in and writing replies to out.
//
// The persona's welcome message, if any, is shown first. "exit" or "quit"
// ends the loop, as does EOF. Provider errors are reported and the loop
// continues. REPL returns nil on a normal exit, ctx.Err() if the context is
// cancelled, or the read error.
func (r *Runner) REPL(ctx context.Context, in io.Reader, out io.Writer) error {
	session := NewSession()
	logger := r.options.Logger.With("persona", r.persona.Name(), "session", session.ID())
	logger.Info("session started")

	if welcome := r.persona.Welcome(); welcome != "" {
		fmt.Fprintln(out, welcome)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isExit(line) {
			break
		}

		resp, err := r.Turn(ctx, session, line)
		switch {
		case errors.Is(err, ErrMaxStepsReached):
			if resp != nil && resp.Content != "" {
				fmt.Fprintln(out, resp.Content)
			}
			fmt.Fprintln(out, "(stopped: too many tool calls in one turn)")
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintf(out, "error: %s\n", ai.Describe(err))
		default:
			fmt.Fprintln(out, resp.Content)
		}
	}

	logger.Info("session ended", "messages", session.Len())
	return scanner.Err()
}

func isExit(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit":
		return true
	}
	return false
}
