package scene

// Camera2D is the camera assigned to a layer. Cameras are shared by
// reference: multiple layers may hold the same instance, e.g. to render a
// mini-map view of the main layer's content.
//
// Projection math belongs to the rendering subsystem; the scene core only
// stores the camera and hands it back.
type Camera2D struct {
	// X, Y is the camera position in scene units.
	X, Y float64
	// Zoom is the magnification factor. 1 means no magnification.
	Zoom float64
}

// NewCamera2D returns a camera at the origin with zoom 1.
func NewCamera2D() *Camera2D {
	return &Camera2D{Zoom: 1}
}
