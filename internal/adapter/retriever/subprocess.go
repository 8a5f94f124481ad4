package retriever

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

const maxStderr = 2048

// SubprocessRetriever runs an external search program per query.
// The program receives the query and limit as its last two arguments and must
// print a JSON array of documents on stdout.
type SubprocessRetriever struct {
	command string
	args    []string
	timeout time.Duration
}

// NewSubprocessRetriever creates a retriever that runs command with args.
// A timeout <= 0 leaves the call bounded only by the caller's context.
func NewSubprocessRetriever(command string, args []string, timeout time.Duration) *SubprocessRetriever {
	return &SubprocessRetriever{
		command: command,
		args:    append([]string(nil), args...),
		timeout: timeout,
	}
}

var _ Retriever = (*SubprocessRetriever)(nil)

// Search runs the program and decodes its output.
func (r *SubprocessRetriever) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	argv := append(append([]string(nil), r.args...), query, strconv.Itoa(limit))
	cmd := exec.CommandContext(ctx, r.command, argv...)
	var stdout bytes.Buffer
	stderr := &boundedBuffer{limit: maxStderr}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		reason := "process failed"
		if ctxErr := ctx.Err(); ctxErr != nil {
			reason = "timed out"
			err = ctxErr
		} else {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				reason = fmt.Sprintf("exited with code %d", exitErr.ExitCode())
			}
		}
		return nil, &Error{Backend: "subprocess", Reason: reason, Stderr: stderr.String(), Err: err}
	}

	docs, err := decodeDocuments(stdout.Bytes())
	if err != nil {
		return nil, &Error{Backend: "subprocess", Reason: "bad output", Stderr: stderr.String(), Err: err}
	}
	return normalize(docs, limit), nil
}

// decodeDocuments validates the payload shape before decoding it.
func decodeDocuments(out []byte) ([]domain.Document, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, errors.New("empty output")
	}
	if !gjson.ValidBytes(out) {
		return nil, errors.New("malformed JSON")
	}
	payload := gjson.ParseBytes(out)
	if payload.IsObject() {
		if msg := payload.Get("error"); msg.Exists() {
			return nil, fmt.Errorf("search error: %s", msg.String())
		}
		return nil, errors.New("expected a JSON array")
	}
	if !payload.IsArray() {
		return nil, errors.New("expected a JSON array")
	}

	docs := make([]domain.Document, 0, len(payload.Array()))
	if err := json.Unmarshal(out, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// boundedBuffer keeps the first limit bytes written to it and drops the rest.
type boundedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
			b.truncated = true
		} else {
			b.buf.Write(p)
		}
	} else if len(p) > 0 {
		b.truncated = true
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	s := strings.TrimSpace(b.buf.String())
	if b.truncated {
		s += "..."
	}
	return s
}
