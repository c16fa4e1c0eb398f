package physics

import "strings"

// ContactFlags records which sides of a collider touched something this tick
// and which of those sides are locked, i.e. backed by something that cannot
// give way. The zero value is empty.
type ContactFlags struct {
	bits uint8
}

const lockShift = 4

func touchBit(s Side) uint8 {
	switch s {
	case SideTop:
		return 1 << 0
	case SideBottom:
		return 1 << 1
	case SideLeft:
		return 1 << 2
	case SideRight:
		return 1 << 3
	default:
		return 0
	}
}

func lockBit(s Side) uint8 {
	return touchBit(s) << lockShift
}

// Touching reports whether side s is in contact.
func (f ContactFlags) Touching(s Side) bool {
	b := touchBit(s)
	return b != 0 && f.bits&b != 0
}

// Locked reports whether side s is locked.
func (f ContactFlags) Locked(s Side) bool {
	b := lockBit(s)
	return b != 0 && f.bits&b != 0
}

// WithTouch returns f with side s marked as touching.
func (f ContactFlags) WithTouch(s Side) ContactFlags {
	return ContactFlags{bits: f.bits | touchBit(s)}
}

// WithLock returns f with side s touching and locked.
func (f ContactFlags) WithLock(s Side) ContactFlags {
	return ContactFlags{bits: f.bits | touchBit(s) | lockBit(s)}
}

// WithoutTouch clears the touch bit of s. Locked sides keep their touch bit.
func (f ContactFlags) WithoutTouch(s Side) ContactFlags {
	if f.Locked(s) {
		return f
	}
	return ContactFlags{bits: f.bits &^ touchBit(s)}
}

// Union returns the bitwise OR of f and o.
func (f ContactFlags) Union(o ContactFlags) ContactFlags {
	return ContactFlags{bits: f.bits | o.bits}
}

// Empty reports whether no bit is set.
func (f ContactFlags) Empty() bool {
	return f.bits == 0
}

func (f ContactFlags) String() string {
	var parts []string
	for _, s := range []Side{SideTop, SideBottom, SideLeft, SideRight} {
		switch {
		case f.Locked(s):
			parts = append(parts, s.String()+"!")
		case f.Touching(s):
			parts = append(parts, s.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
