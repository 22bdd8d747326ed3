// Package voice models the speech-to-text boundary. A Source delivers a
// single final transcript per listening session; no interim results are
// consumed. On clients without a speech capability the feature is reported
// as disabled, never a crash.
package voice

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var (
	// ErrUnavailable indicates the client has no speech capture capability.
	// Callers surface it as a disabled-feature status.
	ErrUnavailable = errors.New("speech capture is not available on this client")
	// ErrNoSpeech indicates the listening session ended without a transcript.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrCanceled indicates the user stopped the capture before a result
	// arrived. This is a hard cancel: no interpretation is triggered.
	ErrCanceled = errors.New("capture canceled")
	// ErrAlreadyCapturing indicates a capture session is already running.
	ErrAlreadyCapturing = errors.New("a capture session is already running")
)

// Source delivers one final transcript string per listening session.
type Source interface {
	Capture(ctx context.Context) (string, error)
}

// Unavailable is a Source for clients without speech capture.
type Unavailable struct{}

func (Unavailable) Capture(ctx context.Context) (string, error) {
	return "", ErrUnavailable
}

// ReaderSource reads one line from a reader and treats it as the final
// transcript. It stands in for a real speech recognizer: the CLI points it
// at standard input.
type ReaderSource struct {
	r *bufio.Reader
}

// NewReaderSource wraps the given reader.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

func (s *ReaderSource) Capture(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := s.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			ch <- result{"", err}
			return
		}
		ch <- result{line, nil}
	}()

	select {
	case <-ctx.Done():
		return "", ErrCanceled
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		transcript := strings.TrimSpace(res.line)
		if transcript == "" {
			return "", ErrNoSpeech
		}
		return transcript, nil
	}
}

// recorderState tracks the capture sub-state. Cancellation is legal only
// from the capturing state.
type recorderState int

const (
	recorderIdle recorderState = iota
	recorderCapturing
)

// Recorder serializes listening sessions over a Source. A second Capture
// while one is running is rejected, and Cancel hard-stops an in-flight
// session before any transcript is produced.
type Recorder struct {
	source Source

	mu     sync.Mutex
	state  recorderState
	cancel context.CancelFunc
}

// NewRecorder creates a Recorder over the given source.
func NewRecorder(source Source) *Recorder {
	return &Recorder{source: source, state: recorderIdle}
}

// Capture runs one listening session and returns the final transcript.
func (r *Recorder) Capture(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.state != recorderIdle {
		r.mu.Unlock()
		return "", ErrAlreadyCapturing
	}
	captureCtx, cancel := context.WithCancel(ctx)
	r.state = recorderCapturing
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.state = recorderIdle
		r.cancel = nil
		r.mu.Unlock()
	}()

	return r.source.Capture(captureCtx)
}

// Cancel stops an in-flight capture. It is a no-op when nothing is running.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == recorderCapturing && r.cancel != nil {
		r.cancel()
	}
}
