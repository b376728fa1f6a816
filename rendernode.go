package termframe

// Axis selects a Stack's layout direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// RenderNode is the tree produced by components and consumed by the
// rasterizer. It is a closed sum type: only the variants declared in
// this file implement it.
type RenderNode interface {
	isRenderNode()
}

// TextNode renders a single line of text at the cursor implied by its
// position in the tree, using Style (nil = inherit).
type TextNode struct {
	Text  string
	Style *Style
}

// BoxNode lays out its children within an optional fixed width/height,
// filling any remaining area with Style's background.
type BoxNode struct {
	Children []RenderNode
	Width    int // 0 = natural
	Height   int // 0 = natural
	Style    *Style
}

// StackNode arranges children one after another along Axis.
type StackNode struct {
	Axis     Axis
	Children []RenderNode
}

// StyledNode applies Style to everything Inner renders, without
// affecting layout.
type StyledNode struct {
	Inner RenderNode
	Style Style
}

// PositionedNode places Inner at an explicit (X,Y) offset relative to
// its parent's origin. The rasterizer does not consult Z: positioned
// nodes are drawn in tree order.
type PositionedNode struct {
	Inner RenderNode
	X, Y  int
	Z     int
}

// CellsNode places explicit (x,y,cell) triples directly, bypassing
// layout.
type CellsNode struct {
	Cells []PositionedCell
}

// PositionedCell is one entry of a CellsNode.
type PositionedCell struct {
	X, Y int
	Cell Cell
}

// EmptyNode renders nothing.
type EmptyNode struct{}

// OverlayNode renders Inner above whatever the rasterizer has already
// drawn at (X,Y), ordered by Z among sibling overlays.
type OverlayNode struct {
	Inner RenderNode
	X, Y  int
	Z     int
}

func (TextNode) isRenderNode()       {}
func (BoxNode) isRenderNode()        {}
func (StackNode) isRenderNode()      {}
func (StyledNode) isRenderNode()     {}
func (PositionedNode) isRenderNode() {}
func (CellsNode) isRenderNode()      {}
func (EmptyNode) isRenderNode()      {}
func (OverlayNode) isRenderNode()    {}

// RenderErrorNode is what the runtime substitutes when a component's
// view panics, rendered at the origin per the runtime's error contract.
func RenderErrorNode() RenderNode {
	return TextNode{Text: "[Render Error]"}
}
