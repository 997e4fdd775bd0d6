package chatgraph

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/ports"
)

// Runner drives a line-oriented chat loop over a Conversation.
// It allows for easy testing and integration with different frontends.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Prompt   string
	Renderer ContentRenderer

	// JSON switches to JSON Lines: each input line is a JSON string, an
	// object with a "text" field or raw text, and each reply is written as
	// one encoded domain.Reply. Prompt and Renderer are ignored.
	JSON bool
}

// ContentRenderer transforms an answer before it is written, for example to
// render markdown as ANSI without coupling the core to a terminal library.
type ContentRenderer func(string) (string, error)

// MaxLineSize bounds one input line. Longer lines are discarded and reported
// as too large; the loop keeps reading.
const MaxLineSize = 1 << 20

// Commands understood by the Runner.
const (
	CommandReset = "/reset"
	CommandWhere = "/where"
	CommandQuit  = "/quit"
)

// Run reads messages until EOF, /quit or ctx cancellation.
func (r *Runner) Run(ctx context.Context, conv ports.Conversation, sessionID string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	reader := bufio.NewReader(r.Input)
	for {
		if !r.Headless && !r.JSON && r.Prompt != "" {
			fmt.Fprint(r.Output, r.Prompt)
		}
		raw, readErr := readLine(reader, MaxLineSize)
		if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, domain.ErrInputTooLarge) {
			return fmt.Errorf("read input: %w", readErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if errors.Is(readErr, domain.ErrInputTooLarge) {
			if err := r.writeRetry(readErr); err != nil {
				return err
			}
			continue
		}
		if errors.Is(readErr, io.EOF) && raw == "" {
			return nil
		}

		line := strings.TrimSpace(raw)
		if r.JSON {
			line = decodeLine(line)
		}
		if line == "" {
			continue
		}

		var (
			reply *domain.Reply
			err   error
		)
		switch line {
		case CommandQuit:
			return nil
		case CommandWhere:
			if err := r.where(ctx, conv, sessionID); err != nil {
				return err
			}
			continue
		case CommandReset:
			reply, err = conv.Reset(ctx, sessionID)
		default:
			reply, err = conv.Send(ctx, sessionID, line)
		}
		if errors.Is(err, domain.ErrInputTooLarge) || errors.Is(err, domain.ErrInvalidUTF8) {
			if err := r.writeRetry(err); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if err := r.WriteReply(reply); err != nil {
			return err
		}
	}
}

// writeRetry tells the user their input was rejected.
func (r *Runner) writeRetry(cause error) error {
	if r.JSON {
		return json.NewEncoder(r.Output).Encode(map[string]string{"error": cause.Error()})
	}
	_, err := fmt.Fprintf(r.Output, "Error: %v. Please try again.\n", cause)
	return err
}

// readLine reads up to and excluding the next newline. Bytes past limit are
// discarded and the line is reported as ErrInputTooLarge.
func readLine(br *bufio.Reader, limit int) (string, error) {
	var (
		buf  []byte
		size int
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if size > limit {
				return "", fmt.Errorf("%w: size=%d limit=%d", domain.ErrInputTooLarge, size, limit)
			}
			return string(buf), err
		}
		size += len(chunk)
		if size <= limit {
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			break
		}
	}
	if size > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", domain.ErrInputTooLarge, size, limit)
	}
	return string(buf), nil
}

func (r *Runner) where(ctx context.Context, conv ports.Conversation, sessionID string) error {
	snap, err := conv.Load(ctx, sessionID)
	fresh := errors.Is(err, domain.ErrSessionNotFound)
	if err != nil && !fresh {
		return err
	}
	if fresh {
		snap = &domain.Snapshot{SessionID: sessionID, NodeID: conv.Graph().Root().ID()}
	}

	if r.JSON {
		return json.NewEncoder(r.Output).Encode(snap)
	}
	if fresh {
		_, err = fmt.Fprintf(r.Output, "at node %d (new session)\n", snap.NodeID)
		return err
	}
	_, err = fmt.Fprintf(r.Output, "at node %d after %d turns\n", snap.NodeID, snap.Turns)
	return err
}

// WriteReply writes one reply in the Runner's output mode.
func (r *Runner) WriteReply(reply *domain.Reply) error {
	if r.JSON {
		return json.NewEncoder(r.Output).Encode(reply)
	}

	text := reply.Text
	if r.Renderer != nil {
		rendered, err := r.Renderer(text)
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		text = rendered
	}
	_, err := fmt.Fprintln(r.Output, strings.TrimRight(text, "\n"))
	return err
}

// decodeLine accepts a JSON string, an object with a "text" field, or raw text.
func decodeLine(line string) string {
	var s string
	if err := json.Unmarshal([]byte(line), &s); err == nil {
		return strings.TrimSpace(s)
	}
	var msg struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(line), &msg); err == nil {
		return strings.TrimSpace(msg.Text)
	}
	return line
}
