package scene

import "errors"

var (
	ErrInvalidNode     = errors.New("invalid node")
	ErrCycle           = errors.New("node would become its own ancestor")
	ErrUnreachable     = errors.New("node not reachable from ancestor")
	ErrUnknownNode     = errors.New("unknown node")
	ErrNameTaken       = errors.New("node name already bound")
	ErrNoMesh          = errors.New("node holds no mesh")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrLightsStale     = errors.New("light slot not updated this frame")
)
