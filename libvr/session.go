package libvr

import (
	"errors"
	"fmt"
	"log"
)

type State int

const (
	StateFlat State = iota
	// StateRequesting is the Flat state with a present request in flight.
	StateRequesting
	StateStereo
)

func (s State) String() string {
	switch s {
	case StateFlat:
		return "flat"
	case StateRequesting:
		return "requesting"
	case StateStereo:
		return "stereo"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Surface is the output surface both eyes are rendered into.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Bind()
}

// Session switches a display between flat and stereo presentation.
// All methods must be called from the render thread.
type Session struct {
	display  Display
	surface  Surface
	renderer EyeRenderer
	state    State
	pending  *PresentFuture
	driver   *FrameDriver
	params   SessionParams
	err      error
	// OnStateChange, if set, is called after every transition.
	OnStateChange func(from, to State)
}

func NewSession(display Display, surface Surface, renderer EyeRenderer) *Session {
	return &Session{
		display:  display,
		surface:  surface,
		renderer: renderer,
		state:    StateFlat,
	}
}

func (s *Session) State() State {
	return s.state
}

// Err returns the reason the last presentation failed or ended unexpectedly.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) Display() Display {
	return s.display
}

func (s *Session) Params() SessionParams {
	return s.params
}

// Driver returns the active frame driver, or nil outside of stereo.
func (s *Session) Driver() *FrameDriver {
	return s.driver
}

// Toggle requests presentation when flat and ends it when stereo.
// It fails with ErrPresentPending while a request is in flight.
func (s *Session) Toggle() error {
	switch s.state {
	case StateFlat:
		s.requestPresent()
		return nil
	case StateRequesting:
		return ErrPresentPending
	case StateStereo:
		return s.exitPresent()
	}
	return fmt.Errorf("invalid session state %v", s.state)
}

// Update consumes the result of a pending present request. It is a no-op unless
// the session is requesting and the request has settled.
func (s *Session) Update() {
	if s.state != StateRequesting {
		return
	}
	result, ok := s.pending.Poll()
	if !ok {
		return
	}
	s.pending = nil

	if result.Err != nil {
		s.err = fmt.Errorf("present on %v: %w", s.display.DisplayName(), result.Err)
		log.Printf("Stereo presentation failed: %v\n", s.err)
		s.setState(StateFlat)
		return
	}

	left := s.display.EyeParameters(LeftEye)
	right := s.display.EyeParameters(RightEye)
	width, height := StereoSurfaceSize(left, right)
	s.surface.Resize(width, height)
	s.params = result.Params

	s.driver = NewFrameDriver(s.display, s.surface, s.renderer, s.deviceLost)
	s.setState(StateStereo)
	s.driver.Start()
}

// Close ends presentation and abandons a pending request.
func (s *Session) Close() error {
	switch s.state {
	case StateStereo:
		return s.exitPresent()
	case StateRequesting:
		s.pending.Reject(ErrPresentAbandoned)
		s.pending = nil
		s.setState(StateFlat)
		// the display may already have started presenting
		if err := s.display.ExitPresent(); err != nil && !errors.Is(err, ErrNotPresenting) {
			return fmt.Errorf("exit present: %w", err)
		}
	}
	return nil
}

func (s *Session) requestPresent() {
	s.err = nil
	s.pending = s.display.RequestPresent()
	s.setState(StateRequesting)
	// displays may settle synchronously
	s.Update()
}

func (s *Session) exitPresent() error {
	s.stopDriver()
	s.setState(StateFlat)
	if err := s.display.ExitPresent(); err != nil {
		return fmt.Errorf("exit present: %w", err)
	}
	return nil
}

func (s *Session) deviceLost(err error) {
	s.driver = nil
	s.err = fmt.Errorf("frame on %v: %w", s.display.DisplayName(), err)
	log.Printf("Stereo presentation lost: %v\n", s.err)
	s.setState(StateFlat)
	if err := s.display.ExitPresent(); err != nil {
		log.Printf("Could not exit presentation: %v\n", err)
	}
}

func (s *Session) stopDriver() {
	if s.driver != nil {
		s.driver.Stop()
		s.driver = nil
	}
}

func (s *Session) setState(state State) {
	if s.state == state {
		return
	}
	from := s.state
	s.state = state
	if s.OnStateChange != nil {
		s.OnStateChange(from, state)
	}
}
