package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/papertrim/docscan/internal/geometry"
	"github.com/papertrim/docscan/internal/rectify"
)

// ErrScanInFlight is returned when a scan is requested while a previous
// invocation on the same session has not finished. New requests must queue
// behind or cancel the in-flight scan; the session never interleaves them.
var ErrScanInFlight = errors.New("scan already in flight")

// ErrInvalidTransition is returned when an operation is not legal in the
// session's current state, such as a manual retry while already rectified.
var ErrInvalidTransition = errors.New("invalid session state transition")

// State is the lifecycle position of a scan session.
type State int

const (
	// StateIdle means no scan has run since creation or the last Reset.
	StateIdle State = iota
	// StateDetecting means a scan invocation is in flight.
	StateDetecting
	// StateRectified means the last invocation produced a result. Terminal
	// until Reset (new image or manual corner edit).
	StateRectified
	// StateFailed means the last invocation failed; a manual-corner retry
	// is accepted from here without re-running detection.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetecting:
		return "detecting"
	case StateRectified:
		return "rectified"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session tracks one scan lifecycle over a Scanner:
//
//	Idle -> Detecting -> {Rectified | Failed}
//
// A Failed session accepts a manual-corner retry that transitions to
// Rectified. Rectified is terminal until Reset, which models loading a new
// image or starting a manual corner edit.
//
// Session is safe for concurrent use; a scan requested while another is in
// flight fails with ErrScanInFlight rather than re-entering the pipeline.
type Session struct {
	scanner *Scanner

	mu     sync.Mutex
	state  State
	result *rectify.Result
}

// NewSession returns an idle session over the given scanner.
func NewSession(scanner *Scanner) *Session {
	return &Session{scanner: scanner, state: StateIdle}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the most recent rectification result, or nil when the
// session has not reached Rectified.
func (s *Session) Result() *rectify.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Reset returns the session to Idle, dropping any previous result. Not
// permitted while a scan is in flight.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDetecting {
		return ErrScanInFlight
	}
	s.state = StateIdle
	s.result = nil
	return nil
}

// Scan runs automatic detection and rectification, moving the session to
// Rectified on success or Failed otherwise. Only legal from Idle.
func (s *Session) Scan(ctx context.Context, img image.Image) (*rectify.Result, error) {
	if err := s.begin(StateIdle); err != nil {
		return nil, err
	}
	res, err := s.scanner.Scan(ctx, img)
	s.finish(res, err)
	return res, err
}

// Rectify performs a manual-corner rectification. Legal from Idle (the user
// placed corners without detection) and from Failed (the retry path after
// detection found nothing).
func (s *Session) Rectify(ctx context.Context, img image.Image, pts [4]geometry.Point) (*rectify.Result, error) {
	if err := s.begin(StateIdle, StateFailed); err != nil {
		return nil, err
	}
	res, err := s.scanner.Rectify(ctx, img, pts)
	s.finish(res, err)
	return res, err
}

// begin validates the current state and marks the session in flight.
func (s *Session) begin(allowed ...State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDetecting {
		return ErrScanInFlight
	}
	for _, a := range allowed {
		if s.state == a {
			s.state = StateDetecting
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, s.state)
}

// finish records the invocation outcome. The result is replaced wholesale,
// never partially mutated.
func (s *Session) finish(res *rectify.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.result = nil
		return
	}
	s.state = StateRectified
	s.result = res
}
