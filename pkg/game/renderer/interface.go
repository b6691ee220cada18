// Package renderer defines what a presentation backend receives each frame
// and how a frame is assembled from the game state.
package renderer

// Renderer defines the interface for game rendering backends.
// Implementations include the Ebiten top-down view and the terminal light map.
type Renderer interface {
	// RenderFrame replaces the frame being displayed.
	RenderFrame(f *Frame)

	// RenderOverlay draws text over the current frame, e.g. the pause screen.
	// Overlays are cleared by the next RenderFrame.
	RenderOverlay(text string)
}

// Current holds the active renderer instance
var Current Renderer = Null{}

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	if r == nil {
		r = Null{}
	}
	Current = r
}

// RenderFrame renders a complete game frame
func RenderFrame(f *Frame) {
	Current.RenderFrame(f)
}

// RenderOverlay draws an overlay on the current renderer
func RenderOverlay(text string) {
	Current.RenderOverlay(text)
}

// Null discards every frame. Headless runs use it.
type Null struct{}

func (Null) RenderFrame(*Frame) {}

func (Null) RenderOverlay(string) {}

// Recorder keeps the last frame and overlays it received.
type Recorder struct {
	Last     *Frame
	Frames   int
	Overlays []string
}

func (r *Recorder) RenderFrame(f *Frame) {
	r.Last = f
	r.Frames++
	r.Overlays = nil
}

func (r *Recorder) RenderOverlay(text string) {
	r.Overlays = append(r.Overlays, text)
}
