package component

// SpawnPoint is where an entity returns to when it leaves the level or is
// asked to respawn, in world pixels.
type SpawnPoint struct {
	X float64
	Y float64
}

var SpawnPointComponent = NewComponent[SpawnPoint]()
