package render

// LayerRenderer composites a Layer into the frame at a fixed opacity
type LayerRenderer struct {
	layer   *Layer
	opacity float64
	visible bool
}

// NewLayerRenderer wraps layer for the orchestrator
func NewLayerRenderer(layer *Layer, opacity float64) *LayerRenderer {
	return &LayerRenderer{layer: layer, opacity: opacity, visible: true}
}

// Render implements SystemRenderer
func (r *LayerRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	r.layer.Composite(buf, r.opacity)
}

// IsVisible implements VisibilityToggle
func (r *LayerRenderer) IsVisible() bool {
	return r.visible
}

// SetVisible toggles compositing without touching the layer content
func (r *LayerRenderer) SetVisible(v bool) {
	r.visible = v
}
