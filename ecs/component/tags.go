package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type BallTag struct{}

var BallTagComponent = NewComponent[BallTag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()
