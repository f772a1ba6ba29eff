package libvr

func QueuedHandles(s *Scheduler) int {
	return len(s.order)
}
