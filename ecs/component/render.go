package component

import "image/color"

// Render is the flat colour an entity is drawn with in debug views.
type Render struct {
	Color color.NRGBA
}

var RenderComponent = NewComponent[Render]()
