package voice

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestUnavailableSource(t *testing.T) {
	_, err := Unavailable{}.Capture(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestReaderSourceReadsOneLine(t *testing.T) {
	src := NewReaderSource(strings.NewReader("  add buy milk  \nsecond line\n"))
	got, err := src.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if got != "add buy milk" {
		t.Errorf("transcript = %q", got)
	}
}

func TestReaderSourceEOFWithoutNewline(t *testing.T) {
	src := NewReaderSource(strings.NewReader("add buy milk"))
	got, err := src.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if got != "add buy milk" {
		t.Errorf("transcript = %q", got)
	}
}

func TestReaderSourceEmptyInputIsNoSpeech(t *testing.T) {
	for _, input := range []string{"", "   \n"} {
		src := NewReaderSource(strings.NewReader(input))
		if _, err := src.Capture(context.Background()); !errors.Is(err, ErrNoSpeech) {
			t.Errorf("input %q: error = %v, want ErrNoSpeech", input, err)
		}
	}
}

func TestReaderSourceCanceledContext(t *testing.T) {
	// A reader that never produces data keeps the capture pending.
	src := NewReaderSource(neverReader{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := src.Capture(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, ErrCanceled) {
			t.Fatalf("error = %v, want ErrCanceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("capture did not stop after cancel")
	}
}

type neverReader struct{}

func (neverReader) Read(p []byte) (int, error) {
	select {} // block forever
}

// blockingSource stays capturing until its context is canceled.
type blockingSource struct {
	started chan struct{}
}

func (s *blockingSource) Capture(ctx context.Context) (string, error) {
	close(s.started)
	<-ctx.Done()
	return "", ErrCanceled
}

func TestRecorderRejectsOverlappingCapture(t *testing.T) {
	src := &blockingSource{started: make(chan struct{})}
	rec := NewRecorder(src)

	done := make(chan error, 1)
	go func() {
		_, err := rec.Capture(context.Background())
		done <- err
	}()
	<-src.started

	if _, err := rec.Capture(context.Background()); !errors.Is(err, ErrAlreadyCapturing) {
		t.Fatalf("second capture error = %v, want ErrAlreadyCapturing", err)
	}

	rec.Cancel()
	select {
	case err := <-done:
		if !errors.Is(err, ErrCanceled) {
			t.Fatalf("first capture error = %v, want ErrCanceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not stop the capture")
	}

	// The recorder is idle again and can run a fresh session.
	got, err := rec2Capture(rec, "walk dog\n")
	if err != nil {
		t.Fatalf("capture after cancel failed: %v", err)
	}
	if got != "walk dog" {
		t.Errorf("transcript = %q", got)
	}
}

// rec2Capture swaps the source for a reader-backed one and runs a session.
func rec2Capture(rec *Recorder, input string) (string, error) {
	rec.source = NewReaderSource(strings.NewReader(input))
	return rec.Capture(context.Background())
}

func TestRecorderCancelWhenIdleIsNoOp(t *testing.T) {
	rec := NewRecorder(NewReaderSource(io.MultiReader()))
	rec.Cancel() // must not panic
}
