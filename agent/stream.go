package agent

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/wirelit/agentdrive/internal/ndjson"
	"github.com/wirelit/agentdrive/protocol"
)

// Stream is a live event sequence paired with a deferred aggregate
// result. Events delivers every event the CLI emits, in emission order;
// Result settles once the stream is exhausted and the process has been
// reaped, folding exactly the events that Events delivered.
//
// The sequence is finite and single-pass. Consume it in full (or call
// Close) for Result to settle promptly: an abandoned, unclosed stream
// leaves Result pending.
type Stream struct {
	events    chan protocol.Event
	proc      *process
	done      chan struct{} // closed when result/err are settled
	closed    chan struct{} // closed by Close
	closeOnce sync.Once
	onSession func(string)

	// Written only by the run goroutine before done closes.
	result *TurnResult
	err    error
	buffer []protocol.Event

	mu      sync.Mutex
	session string
}

func newStream(proc *process, bufferSize int, onSession func(string)) *Stream {
	return &Stream{
		events:    make(chan protocol.Event, bufferSize),
		proc:      proc,
		done:      make(chan struct{}),
		closed:    make(chan struct{}),
		onSession: onSession,
	}
}

// Events returns the live event channel. It is closed when the CLI's
// output ends or a decode/parse failure terminates the sequence; after
// it closes, Result reports whether the stream ended in failure.
func (s *Stream) Events() <-chan protocol.Event {
	return s.events
}

// Result blocks until the stream has been fully consumed and the process
// has exited, then returns the aggregate. It fails with *ExecutionError
// when the process exited non-zero having emitted no events, or with the
// decode/parse error that terminated the live sequence — the same one
// the Events consumer observed.
func (s *Stream) Result(ctx context.Context) (*TurnResult, error) {
	select {
	case <-s.done:
		return s.result, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SessionID returns the session identifier latched from the first event
// that carried one, or "" if none has been observed yet.
func (s *Stream) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// latchSession adopts the first non-empty session identifier and reports
// whether this call was the one that latched it.
func (s *Stream) latchSession(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sid == "" || s.session != "" {
		return false
	}
	s.session = sid
	return true
}

// Close kills the CLI process group and releases its pipes. It does not
// by itself settle Result: the kill surfaces as a process exit that the
// usual end-of-stream reconciliation handles. Safe to call multiple
// times and after normal completion.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.proc.kill()
		s.proc.stdout.Close()
	})
	return nil
}

// run is the producer: it owns the subprocess's stdout, pushes each
// decoded event to the live channel and the internal buffer, and settles
// the deferred result after reconciling with the exit code. Runs in its
// own goroutine, started by Session.Stream.
func (s *Stream) run() {
	reader := ndjson.NewReader(s.proc.stdout)
	var failure error

loop:
	for {
		line, err := reader.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			if s.isClosed() || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				// Consumer-driven shutdown; reconcile with the exit code.
				break
			}
			failure = &StreamError{Cause: err}
			break
		}

		ev, err := protocol.ParseEvent(line)
		if err != nil {
			failure = err
			break
		}

		if sid := ev.Session(); s.latchSession(sid) {
			if s.onSession != nil {
				s.onSession(sid)
			}
		}

		// Buffer first: whatever the live consumer sees is exactly what
		// the aggregate is built from.
		s.buffer = append(s.buffer, ev)

		select {
		case s.events <- ev:
		case <-s.closed:
			break loop
		}
	}

	close(s.events)
	s.proc.stdout.Close()
	s.settle(failure)
}

// settle resolves the deferred result. A mid-stream failure rejects it
// outright (and tears the process down); otherwise the exit code decides:
// non-zero with zero events observed is fatal, anything else folds the
// buffer — a non-zero exit after partial output is best effort, since a
// turn_failed event already communicates failure in-band.
func (s *Stream) settle(failure error) {
	if failure != nil {
		s.proc.kill()
		s.err = failure
		close(s.done)
		return
	}

	s.proc.reap()
	code, _ := s.proc.exit.wait(context.Background())

	if code != 0 && len(s.buffer) == 0 {
		s.err = &ExecutionError{
			ExitCode:  code,
			Stderr:    "",
			SessionID: s.SessionID(),
		}
		close(s.done)
		return
	}

	result := FoldEvents(s.buffer)
	if result.SessionID == "" {
		result.SessionID = s.SessionID()
	}
	s.result = result
	close(s.done)
}

func (s *Stream) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}
