package component

// PlayerTag marks the entity whose contacts raise death events.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// CellTowerTag marks a signal source used to compute input latency.
type CellTowerTag struct{}

var CellTowerTagComponent = NewComponent[CellTowerTag]()

// ExitTag marks a level exit.
type ExitTag struct{}

var ExitTagComponent = NewComponent[ExitTag]()
