package component

// Patrol moves a kinematic body back and forth between MinX and MaxX at
// Speed pixels per second.
type Patrol struct {
	MinX  float64
	MaxX  float64
	Speed float64
}

var PatrolComponent = NewComponent[Patrol]()
