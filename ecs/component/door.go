package component

// Button is a pressure plate for a door. Pressed is the state seen on the
// previous tick and is used to find rising and falling edges.
type Button struct {
	Door    string
	Pressed bool
}

var ButtonComponent = NewComponent[Button]()

// Slider is a door that retracts into the floor while its door is open.
// Extent is how far it has retracted so far; MaxExtent caps it. Change is the
// retraction per tick. BlockingKind/BlockingWeight are restored on closing.
type Slider struct {
	Door           string
	Activated      bool
	Extent         float64
	MaxExtent      float64
	Change         float64
	BlockingKind   ColliderKind
	BlockingWeight float64
}

var SliderComponent = NewComponent[Slider]()

// Door tracks how many of a door's buttons are still unpressed. Slider is the
// ecs.Entity (as uint64) of the door body. Rule is an optional tengo
// expression deciding whether the door is open.
type Door struct {
	Buttons   int
	Remaining int
	Slider    uint64
	Rule      string
}

// Open reports whether every button of the door is held down.
func (d *Door) Open() bool {
	return d != nil && d.Remaining <= 0
}

// DoorRegistry is a singleton keyed by door id.
type DoorRegistry struct {
	Doors map[string]*Door
}

// Door returns the door with the given id, creating it on first use.
func (r *DoorRegistry) Door(id string) *Door {
	if r.Doors == nil {
		r.Doors = make(map[string]*Door)
	}
	d, ok := r.Doors[id]
	if !ok {
		d = &Door{}
		r.Doors[id] = d
	}
	return d
}

var DoorRegistryComponent = NewComponent[DoorRegistry]()
