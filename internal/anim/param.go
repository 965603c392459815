// Package anim implements animated scalar parameters.
//
// A Param carries a current value and at most one active animation. Starting
// a new animation supersedes the old one and continues from the live value;
// Set is the only way to jump.
package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Kind identifies what is currently driving a Param.
type Kind int

const (
	KindNone Kind = iota
	KindTween
	KindRepeat
	KindSpring
)

// String returns a human-readable kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTween:
		return "tween"
	case KindRepeat:
		return "repeat"
	case KindSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Spring settling thresholds.
const (
	springPosEpsilon = 1e-3
	springVelEpsilon = 1e-2
)

// Param is a continuous scalar with at most one active animation.
// The zero value is a resting parameter at 0.
type Param struct {
	value float64
	kind  Kind

	// tween
	from     float64
	target   float64
	duration time.Duration
	elapsed  time.Duration
	easing   Easing

	// repeat
	speed  float64 // units per second
	period float64

	// spring
	velocity  float64
	frequency float64
	damping   float64
}

// NewParam returns a resting parameter with the given value.
func NewParam(v float64) Param {
	return Param{value: v}
}

// Value returns the live value.
func (p *Param) Value() float64 {
	return p.value
}

// Kind returns what is driving the parameter.
func (p *Param) Kind() Kind {
	return p.kind
}

// Active reports whether an animation is in flight.
func (p *Param) Active() bool {
	return p.kind != KindNone
}

// Target returns the value the parameter is heading to. For a resting or
// repeating parameter this is the live value.
func (p *Param) Target() float64 {
	switch p.kind {
	case KindTween, KindSpring:
		return p.target
	default:
		return p.value
	}
}

// Set cancels any animation and jumps to v.
func (p *Param) Set(v float64) {
	p.Stop()
	p.value = v
}

// Stop cancels any animation, keeping the live value.
func (p *Param) Stop() {
	p.kind = KindNone
	p.velocity = 0
	p.elapsed = 0
}

// AnimateTo tweens from the live value to target over d. A non-positive
// duration applies target immediately.
func (p *Param) AnimateTo(target float64, d time.Duration, easing Easing) {
	if d <= 0 {
		p.Set(target)
		return
	}
	if easing == nil {
		easing = Linear
	}
	p.Stop()
	p.kind = KindTween
	p.from = p.value
	p.target = target
	p.duration = d
	p.easing = easing
}

// Spin starts an infinite constant-speed animation of speed units per
// second. When period is positive the value wraps into [0, period).
func (p *Param) Spin(speed, period float64) {
	p.Stop()
	p.kind = KindRepeat
	p.speed = speed
	p.period = period
}

// SpringTo drives the parameter toward target with a damped spring of the
// given stiffness and damping (unit mass). The current velocity is kept
// when retargeting a spring in flight.
func (p *Param) SpringTo(target, stiffness, damping float64) {
	if stiffness <= 0 {
		p.Set(target)
		return
	}
	velocity := 0.0
	if p.kind == KindSpring {
		velocity = p.velocity
	}
	p.Stop()
	p.kind = KindSpring
	p.target = target
	p.velocity = velocity
	p.frequency = math.Sqrt(stiffness)
	p.damping = damping / (2 * math.Sqrt(stiffness))
}

// Step advances the animation by dt. It returns true when a tween or spring
// reached its target during this step.
func (p *Param) Step(dt time.Duration) bool {
	if dt <= 0 {
		return false
	}
	switch p.kind {
	case KindTween:
		p.elapsed += dt
		progress := float64(p.elapsed) / float64(p.duration)
		if progress >= 1 {
			p.value = p.target
			p.Stop()
			return true
		}
		p.value = p.from + (p.target-p.from)*p.easing(progress)
	case KindRepeat:
		p.value += p.speed * dt.Seconds()
		if p.period > 0 {
			p.value = math.Mod(p.value, p.period)
			if p.value < 0 {
				p.value += p.period
			}
		}
	case KindSpring:
		s := harmonica.NewSpring(dt.Seconds(), p.frequency, p.damping)
		p.value, p.velocity = s.Update(p.value, p.velocity, p.target)
		if math.Abs(p.value-p.target) < springPosEpsilon && math.Abs(p.velocity) < springVelEpsilon {
			p.value = p.target
			p.Stop()
			return true
		}
	}
	return false
}
