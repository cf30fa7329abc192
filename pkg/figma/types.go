package figma

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, document structure, published component catalogs,
// and schema version information.
type FileResponse struct {
	Name          string                  `json:"name"`
	LastModified  string                  `json:"lastModified"`
	ThumbnailURL  string                  `json:"thumbnailUrl"`
	Version       string                  `json:"version"`
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles,omitempty"`
	SchemaVersion int                     `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when
// fetching specific nodes. It contains file metadata and a map of node IDs to
// their corresponding NodeData.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps a node with its document structure and the component catalogs
// referenced by that subtree.
type NodeData struct {
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles,omitempty"`
}

// Component represents a Figma component definition with its metadata.
// Components are reusable design elements that can be instantiated throughout the file.
type Component struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ComponentSetID string `json:"componentSetId,omitempty"`
	Remote         bool   `json:"remote,omitempty"`
}

// ComponentSet represents a Figma component set (a group of component variants).
type ComponentSet struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Style represents a published Figma style with its basic properties.
// Styles can be colors (FILL), text styles (TEXT), effects (EFFECT), or layout grids (GRID).
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`
}

// ImagesResponse represents the response from the Figma image render endpoint.
// Images maps node IDs to temporary download URLs; a missing or empty URL means
// the node could not be rendered.
type ImagesResponse struct {
	Err    string            `json:"err,omitempty"`
	Images map[string]string `json:"images"`
}

// FileImagesResponse represents the response from the file images endpoint,
// which resolves imageRef values (from IMAGE fills) to download URLs.
type FileImagesResponse struct {
	Error  bool           `json:"error,omitempty"`
	Status int            `json:"status,omitempty"`
	Meta   FileImagesMeta `json:"meta"`
}

// FileImagesMeta holds the imageRef -> URL map of a FileImagesResponse.
type FileImagesMeta struct {
	Images map[string]string `json:"images"`
}

// ComponentProperty is a single property applied to a component instance.
// Value is a string or a bool depending on the property type.
type ComponentProperty struct {
	Value any    `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Nodes can be frames, groups, text, shapes, or other Figma elements, each with
// their own properties such as fills, strokes, effects, layout settings, and
// children nodes. All fields beyond the identity triple are optional; absent
// Visible means visible and absent Opacity means fully opaque.
type Node struct {
	ID                     string                       `json:"id"`
	Name                   string                       `json:"name"`
	Type                   string                       `json:"type"`
	Visible                *bool                        `json:"visible,omitempty"`
	Children               []Node                       `json:"children,omitempty"`
	BackgroundColor        *Color                       `json:"backgroundColor,omitempty"`
	Fills                  []Paint                      `json:"fills,omitempty"`
	Strokes                []Paint                      `json:"strokes,omitempty"`
	StrokeWeight           float64                      `json:"strokeWeight,omitempty"`
	StrokeDashes           []float64                    `json:"strokeDashes,omitempty"`
	Opacity                *float64                     `json:"opacity,omitempty"`
	CornerRadius           *float64                     `json:"cornerRadius,omitempty"`
	RectangleCornerRadii   []float64                    `json:"rectangleCornerRadii,omitempty"`
	Effects                []Effect                     `json:"effects,omitempty"`
	Characters             string                       `json:"characters,omitempty"`
	Style                  *TypeStyle                   `json:"style,omitempty"`
	Styles                 map[string]string            `json:"styles,omitempty"`
	AbsoluteBoundingBox    *Rectangle                   `json:"absoluteBoundingBox,omitempty"`
	Constraints            *LayoutConstraint            `json:"constraints,omitempty"`
	ComponentID            string                       `json:"componentId,omitempty"`
	ComponentProperties    map[string]ComponentProperty `json:"componentProperties,omitempty"`
	ExportSettings         []ExportSetting              `json:"exportSettings,omitempty"`
	LayoutMode             string                       `json:"layoutMode,omitempty"`
	LayoutSizingHorizontal string                       `json:"layoutSizingHorizontal,omitempty"`
	LayoutSizingVertical   string                       `json:"layoutSizingVertical,omitempty"`
	PrimaryAxisAlignItems  string                       `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems  string                       `json:"counterAxisAlignItems,omitempty"`
	PaddingLeft            float64                      `json:"paddingLeft,omitempty"`
	PaddingRight           float64                      `json:"paddingRight,omitempty"`
	PaddingTop             float64                      `json:"paddingTop,omitempty"`
	PaddingBottom          float64                      `json:"paddingBottom,omitempty"`
	ItemSpacing            float64                      `json:"itemSpacing,omitempty"`
}

// IsVisible reports whether the node should be traversed. Figma omits the
// visible flag for visible nodes, so only an explicit false hides a node.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// ExportSetting describes a designer-configured export preset on a node.
type ExportSetting struct {
	Suffix string  `json:"suffix,omitempty"`
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// Color represents an RGBA color with float values ranging from 0 to 1.
// The R, G, B, and A (alpha/opacity) values must be converted to 0-255 range
// for standard use.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill or stroke applied to a Figma node. It is an open
// union over the paint type: SOLID carries Color, the GRADIENT_* kinds carry
// handle positions and stops, IMAGE carries the image reference and placement
// fields, and PATTERN carries tiling parameters.
type Paint struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`

	// SOLID
	Color *Color `json:"color,omitempty"`

	// GRADIENT_LINEAR, GRADIENT_RADIAL, GRADIENT_ANGULAR, GRADIENT_DIAMOND
	GradientHandlePositions []Vector    `json:"gradientHandlePositions,omitempty"`
	GradientStops           []ColorStop `json:"gradientStops,omitempty"`

	// IMAGE
	ImageRef       string             `json:"imageRef,omitempty"`
	ScaleMode      string             `json:"scaleMode,omitempty"`
	ImageTransform [][]float64        `json:"imageTransform,omitempty"`
	ScalingFactor  *float64           `json:"scalingFactor,omitempty"`
	Rotation       *float64           `json:"rotation,omitempty"`
	Filters        map[string]float64 `json:"filters,omitempty"`
	GifRef         string             `json:"gifRef,omitempty"`

	// PATTERN
	SourceNodeID        string  `json:"sourceNodeId,omitempty"`
	TileType            string  `json:"tileType,omitempty"`
	Spacing             *Vector `json:"spacing,omitempty"`
	HorizontalAlignment string  `json:"horizontalAlignment,omitempty"`
	VerticalAlignment   string  `json:"verticalAlignment,omitempty"`
}

// IsVisible reports whether the paint participates in rendering. As with
// nodes, only an explicit false hides a paint.
func (p *Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// EffectiveOpacity returns the paint opacity, defaulting to 1 when unset.
func (p *Paint) EffectiveOpacity() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// ColorStop is a single gradient stop: a position along the gradient axis in
// [0,1] and the color at that position.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Effect represents a visual effect applied to a Figma node such as drop
// shadows, inner shadows, or blur effects.
type Effect struct {
	Type      string  `json:"type"`
	Visible   *bool   `json:"visible,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// IsVisible reports whether the effect participates in rendering.
func (e *Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// Vector represents a 2D coordinate or offset with X and Y values. Gradient
// handle positions use it as a unit-square-relative coordinate.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents comprehensive text styling properties from Figma.
// It includes font family, weight, size, line height, letter spacing, and
// text alignment settings.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily,omitempty"`
	FontPostScriptName  string  `json:"fontPostScriptName,omitempty"`
	FontWeight          float64 `json:"fontWeight,omitempty"`
	FontSize            float64 `json:"fontSize,omitempty"`
	LineHeightPx        float64 `json:"lineHeightPx,omitempty"`
	LineHeightPercent   float64 `json:"lineHeightPercent,omitempty"`
	LetterSpacing       float64 `json:"letterSpacing,omitempty"`
	TextCase            string  `json:"textCase,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions
// (Width, Height) in the absolute canvas coordinate space.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutConstraint defines how a node's position and size behave when its
// parent is resized.
type LayoutConstraint struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}
