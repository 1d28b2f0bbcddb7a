package component

// RespawnRequest marks a player to be moved back to the level's spawn tile.
// The respawn system runs after physics and removes the request.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
