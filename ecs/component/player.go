package component

type Player struct {
	MoveForce   float64
	JumpImpulse float64
	MaxSpeed    float64
}

var PlayerComponent = NewComponent[Player]()
