package choreo

import (
	"time"

	"github.com/rileyhilliard/savebutton/internal/anim"
)

// suffixSlot shows one suffix at a time. A new suffix waits for the current
// one to finish exiting before it enters, so two are never stacked.
type suffixSlot struct {
	shown   string
	next    string
	exiting bool
	opacity anim.Param
	offset  anim.Param
}

func newSuffixSlot(initial string) suffixSlot {
	return suffixSlot{
		shown:   initial,
		next:    initial,
		opacity: anim.NewParam(1),
		offset:  anim.NewParam(0),
	}
}

// change requests that s be shown, exiting the current suffix first.
func (s *suffixSlot) change(suffix string, d time.Duration) {
	s.next = suffix
	if s.exiting {
		return
	}
	if suffix == s.shown {
		return
	}
	s.exiting = true
	s.opacity.AnimateTo(0, d, anim.EaseOut)
	s.offset.AnimateTo(-SuffixTravel, d, anim.EaseOut)
	s.settle(d)
}

// settle mounts the queued suffix once the outgoing one is gone.
func (s *suffixSlot) settle(d time.Duration) {
	if !s.exiting || s.opacity.Active() || s.offset.Active() {
		return
	}
	s.exiting = false
	s.shown = s.next
	s.opacity.Set(0)
	s.offset.Set(SuffixTravel)
	s.opacity.AnimateTo(1, d, anim.EaseOut)
	s.offset.AnimateTo(0, d, anim.EaseOut)
}

func (s *suffixSlot) step(dt, d time.Duration) {
	s.opacity.Step(dt)
	s.offset.Step(dt)
	s.settle(d)
}

func (s *suffixSlot) active() bool {
	return s.exiting || s.opacity.Active() || s.offset.Active()
}

// finish jumps to the fully entered queued suffix.
func (s *suffixSlot) finish() {
	s.exiting = false
	s.shown = s.next
	s.opacity.Set(1)
	s.offset.Set(0)
}
