package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tabib-chatbot/internal/logger"
)

// DefaultTimeout bounds a single generation call when no timeout is
// configured.
const DefaultTimeout = 60 * time.Second

// Generator produces one reply for an ordered transcript. Implementations
// classify their failures as ErrServiceUnavailable, ErrAuthenticationFailed
// or ErrGenerationTimeout.
type Generator interface {
	Generate(ctx context.Context, transcript []Entry) (string, error)
}

// Result describes what a call to Accept did.
type Result struct {
	// Ignored is set for blank input; nothing was appended.
	Ignored bool
	// Generated is set when the reply came from the generation service
	// rather than the question script.
	Generated bool
	// Reply is the assistant entry appended by this call.
	Reply string
}

// Dialogue drives a Session through the intake script and hands the
// transcript to the generation service once the script is exhausted.
type Dialogue struct {
	gen     Generator
	timeout time.Duration
	log     *logger.Logger
}

// Option configures a Dialogue.
type Option func(*Dialogue)

// WithTimeout sets the per-call generation timeout. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(dl *Dialogue) {
		if d > 0 {
			dl.timeout = d
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(dl *Dialogue) {
		if l != nil {
			dl.log = l
		}
	}
}

// NewDialogue constructs a controller around gen.
func NewDialogue(gen Generator, opts ...Option) *Dialogue {
	d := &Dialogue{gen: gen, timeout: DefaultTimeout, log: logger.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Accept consumes one user utterance. Blank input is ignored. While the
// script has questions left the next one is appended locally; after the last
// question every answer triggers a generation call with the full transcript.
// A failed generation keeps the user entry and appends nothing else.
func (d *Dialogue) Accept(ctx context.Context, sess *Session, utterance string) (Result, error) {
	if !sess.Initialized() {
		return Result{}, ErrNotInitialized
	}
	answer := strings.TrimSpace(utterance)
	if answer == "" {
		return Result{Ignored: true}, nil
	}
	sess.appendUser(answer)

	if sess.advance() {
		last, _ := sess.Last()
		d.log.Debug("advanced intake script", logrus.Fields{"stage": sess.Stage()})
		return Result{Reply: last.Content}, nil
	}

	reply, err := d.generate(ctx, sess.Transcript())
	if err != nil {
		d.log.Warn("generation failed", logrus.Fields{
			"error":      err.Error(),
			"transcript": sess.Len(),
			"language":   sess.Language().Code(),
		})
		return Result{}, err
	}
	sess.appendAssistant(reply)
	d.log.Info("generated reply", logrus.Fields{"transcript": sess.Len(), "language": sess.Language().Code()})
	return Result{Generated: true, Reply: reply}, nil
}

func (d *Dialogue) generate(ctx context.Context, transcript []Entry) (string, error) {
	if d.gen == nil {
		return "", fmt.Errorf("no generator configured: %w", ErrServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	reply, err := d.gen.Generate(ctx, transcript)
	switch {
	case err == nil:
		return reply, nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrGenerationTimeout):
		return "", fmt.Errorf("%w after %s: %v", ErrGenerationTimeout, d.timeout, err)
	case IsRecoverable(err):
		return "", err
	default:
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
}
