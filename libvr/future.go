package libvr

import "sync"

// PresentResult is the outcome of a present request. Err is nil on success.
type PresentResult struct {
	Params SessionParams
	Err    error
}

// PresentFuture settles exactly once, either resolved with session parameters or
// rejected with a reason. It may be settled from any goroutine.
type PresentFuture struct {
	once   sync.Once
	done   chan struct{}
	result PresentResult
}

func NewPresentFuture() *PresentFuture {
	return &PresentFuture{done: make(chan struct{})}
}

// Resolve settles the future successfully. It reports whether this call settled it.
func (f *PresentFuture) Resolve(params SessionParams) bool {
	return f.settle(PresentResult{Params: params})
}

// Reject settles the future with err. It reports whether this call settled it.
func (f *PresentFuture) Reject(err error) bool {
	if err == nil {
		err = ErrPresentRejected
	}
	return f.settle(PresentResult{Err: err})
}

func (f *PresentFuture) settle(result PresentResult) bool {
	settled := false
	f.once.Do(func() {
		f.result = result
		settled = true
		close(f.done)
	})
	return settled
}

func (f *PresentFuture) Done() <-chan struct{} {
	return f.done
}

// Poll returns the result without blocking. ok is false while the future is pending.
func (f *PresentFuture) Poll() (result PresentResult, ok bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return PresentResult{}, false
	}
}
