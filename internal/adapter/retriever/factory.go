package retriever

import (
	"fmt"
	"strings"
	"time"
)

// Retriever modes.
const (
	ModeSubprocess = "subprocess"
	ModeLocal      = "local"
	ModeMock       = "mock"
)

// Options selects and configures a retriever.
type Options struct {
	Mode          string
	Command       string
	Args          []string
	Timeout       time.Duration
	KnowledgeFile string
}

// New creates the retriever named by opts.Mode.
func New(opts Options) (Retriever, error) {
	switch strings.ToLower(opts.Mode) {
	case ModeSubprocess, "":
		if opts.Command == "" {
			return nil, fmt.Errorf("subprocess retriever requires a command")
		}
		return NewSubprocessRetriever(opts.Command, opts.Args, opts.Timeout), nil
	case ModeLocal:
		return LoadLocalRetriever(opts.KnowledgeFile)
	case ModeMock:
		return NewMockRetriever(), nil
	default:
		return nil, fmt.Errorf("unknown retriever mode %q", opts.Mode)
	}
}
