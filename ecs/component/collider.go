package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/blockpush/physics"
)

// ColliderKind is the collision response of a collider.
type ColliderKind uint8

const (
	// KindNone colliders are inert: no detection, no response.
	KindNone ColliderKind = iota
	// KindMovable colliders block each other; Weight decides who yields.
	KindMovable
	// KindDeath ends the run when the player touches it.
	KindDeath
	// KindSensor records contact without blocking.
	KindSensor
	// KindWin ends the level on contact.
	KindWin
)

var kindNames = map[ColliderKind]string{
	KindNone:    "none",
	KindMovable: "movable",
	KindDeath:   "death",
	KindSensor:  "sensor",
	KindWin:     "win",
}

func (k ColliderKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ColliderKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k ColliderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ColliderKind) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("component: unknown collider kind %q", s)
}

// Collider is an axis-aligned box centred on the entity's Transform.
type Collider struct {
	Size   mgl64.Vec2
	Kind   ColliderKind
	Weight float64
	Flags  physics.ContactFlags
}

// Movable returns a blocking collider of the given weight.
func Movable(size mgl64.Vec2, weight float64) *Collider {
	return &Collider{Size: size, Kind: KindMovable, Weight: weight}
}

// Static returns a blocking collider that never yields.
func Static(size mgl64.Vec2) *Collider {
	return Movable(size, math.Inf(1))
}

// Death returns a collider that kills the player on contact.
func Death(size mgl64.Vec2) *Collider {
	return &Collider{Size: size, Kind: KindDeath}
}

// Sensor returns a non-blocking presence collider.
func Sensor(size mgl64.Vec2) *Collider {
	return &Collider{Size: size, Kind: KindSensor}
}

// Win returns a collider that finishes the level on contact.
func Win(size mgl64.Vec2) *Collider {
	return &Collider{Size: size, Kind: KindWin}
}

// EffectiveWeight is the push priority of the collider. Death, sensor and
// win colliders never yield.
func (c *Collider) EffectiveWeight() float64 {
	switch c.Kind {
	case KindMovable:
		return c.Weight
	case KindDeath, KindSensor, KindWin:
		return math.MaxFloat64
	default:
		return 0
	}
}

// IsStatic reports whether the collider is heavy enough to be treated as
// immovable scenery.
func (c *Collider) IsStatic(threshold float64) bool {
	return c.Kind != KindNone && c.EffectiveWeight() >= threshold
}

var ColliderComponent = NewComponent[Collider]()
