package component

// SceneChangeRequest is a one-shot request emitted by gameplay systems to ask
// the scene manager to switch scenes. Systems only emit data; the manager
// owns world teardown and setup.
type SceneChangeRequest struct {
	Scene string
}

var SceneChangeRequestComponent = NewComponent[SceneChangeRequest]()
