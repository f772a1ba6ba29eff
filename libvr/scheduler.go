package libvr

import "golang.org/x/exp/slices"

// Scheduler runs refresh callbacks. Callbacks registered while a batch runs are
// deferred to the next batch, and a cancelled callback is never invoked.
// It is not safe for concurrent use; displays call it from the render thread.
type Scheduler struct {
	next    FrameHandle
	order   []FrameHandle
	pending map[FrameHandle]FrameCallback
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: map[FrameHandle]FrameCallback{},
	}
}

func (s *Scheduler) Schedule(callback FrameCallback) FrameHandle {
	s.next++
	s.order = append(s.order, s.next)
	s.pending[s.next] = callback
	return s.next
}

// Cancel removes a pending registration. Unknown or already run handles are ignored.
func (s *Scheduler) Cancel(handle FrameHandle) {
	if _, ok := s.pending[handle]; !ok {
		return
	}
	delete(s.pending, handle)
	if i := slices.Index(s.order, handle); i != -1 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Run invokes every callback registered before the call, in registration order,
// and returns how many were invoked.
func (s *Scheduler) Run(timestamp float64) int {
	batch := s.order
	s.order = nil
	ran := 0
	for _, handle := range batch {
		// checked per callback: an earlier callback may cancel a later one
		callback, ok := s.pending[handle]
		if !ok {
			continue
		}
		delete(s.pending, handle)
		callback(timestamp)
		ran++
	}
	return ran
}
