package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/internal/presentation/tui"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/google/uuid"
	"golang.org/x/term"
)

// ChatOptions configures an interactive session.
type ChatOptions struct {
	SessionID string // empty starts a new session with a random ID
	Fresh     bool   // forget the stored session before starting
	Headless  bool   // no banner, prompt or markdown rendering
	JSON      bool   // JSON Lines in and out; implies Headless
	Input     io.Reader
	Output    io.Writer
}

// RunChat runs a line-oriented conversation until EOF, /quit or a signal.
func RunChat(ctx context.Context, app *App, opts ChatOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.JSON {
		opts.Headless = true
	}

	interactive := !opts.Headless && isTerminal(opts.Output)
	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	if opts.Fresh {
		if err := app.Manager.Delete(sigCtx, opts.SessionID); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	r := &chatgraph.Runner{
		Input:    NewInterruptibleReader(opts.Input, sigCtx.Done()),
		Output:   opts.Output,
		Headless: opts.Headless,
		JSON:     opts.JSON,
	}
	if interactive {
		tui.PrintBanner(opts.Output, chatgraph.Version)
		r.Prompt = "> "
		r.Renderer = tui.NewRenderer(terminalWidth(opts.Output))
	}

	if err := greet(sigCtx, app, r, opts); err != nil {
		return err
	}

	runErr := r.Run(sigCtx, app.Manager, opts.SessionID)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	if !opts.Headless {
		logCompletion(opts.Output, opts.SessionID, runErr, sigCtx.Signal())
	}
	return handleExecutionError(runErr)
}

// greet announces a resumed session, or opens a new one with the root's
// answer when greetings are enabled.
func greet(ctx context.Context, app *App, r *chatgraph.Runner, opts ChatOptions) error {
	snap, err := app.Manager.Load(ctx, opts.SessionID)
	switch {
	case err == nil:
		if !opts.Headless {
			printSystemMessage(opts.Output, "Resuming session '%s' at node %d after %d turns.", opts.SessionID, snap.NodeID, snap.Turns)
		}
		return nil
	case !errors.Is(err, domain.ErrSessionNotFound):
		return fmt.Errorf("failed to load session: %w", err)
	}

	if !opts.Headless {
		printSystemMessage(opts.Output, "Session '%s' active. Commands: %s.", opts.SessionID,
			strings.Join([]string{chatgraph.CommandReset, chatgraph.CommandWhere, chatgraph.CommandQuit}, ", "))
	}
	if !app.Config.Responses.Greet || app.Blueprint.Graph().Root().AnswerCount() == 0 {
		return nil
	}
	reply, err := app.Manager.Greet(ctx, opts.SessionID)
	if err != nil {
		return err
	}
	return r.WriteReply(reply)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
