package component

// GravityScale scales world gravity for a dynamic body, so gravity flips
// still apply proportionally. 1.0 = normal gravity, 0.0 = none.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
