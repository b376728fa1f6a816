package termframe

import "sort"

// Rasterize clears buf and draws root into it starting at (1,1). This
// is the bridge between a component's view() result and the Diff
// algorithm's buffer-pair input.
func Rasterize(buf *Buffer, root RenderNode) {
	buf.Clear()
	r := &rasterizer{buf: buf}
	r.draw(root, 1, 1, buf.Cols(), buf.Rows(), DefaultStyle())
	r.flushOverlays()
}

type pendingOverlay struct {
	node     RenderNode
	x, y     int
	z        int
	style    Style
	w, h     int
}

type rasterizer struct {
	buf      *Buffer
	overlays []pendingOverlay
}

func (r *rasterizer) draw(n RenderNode, x, y, w, h int, style Style) {
	if n == nil || w <= 0 || h <= 0 {
		return
	}
	switch node := n.(type) {
	case EmptyNode:
		return
	case TextNode:
		s := style
		if node.Style != nil {
			s = *node.Style
		}
		r.buf.WriteString(y, x, node.Text, s)
	case StyledNode:
		r.draw(node.Inner, x, y, w, h, node.Style)
	case BoxNode:
		bw, bh := w, h
		if node.Width > 0 {
			bw = node.Width
		}
		if node.Height > 0 {
			bh = node.Height
		}
		s := style
		if node.Style != nil {
			s = *node.Style
		}
		if node.Style != nil {
			fill := NewCell(" ", s)
			for rr := y; rr < y+bh; rr++ {
				for cc := x; cc < x+bw; cc++ {
					r.buf.Set(rr, cc, fill)
				}
			}
		}
		for _, child := range node.Children {
			r.draw(child, x, y, bw, bh, s)
		}
	case StackNode:
		cx, cy := x, y
		remW, remH := w, h
		for _, child := range node.Children {
			r.draw(child, cx, cy, remW, remH, style)
			if node.Axis == Horizontal {
				adv := childNaturalWidth(child, remW)
				cx += adv
				remW -= adv
			} else {
				adv := childNaturalHeight(child, remH)
				cy += adv
				remH -= adv
			}
		}
	case PositionedNode:
		r.draw(node.Inner, x+node.X, y+node.Y, w-node.X, h-node.Y, style)
	case CellsNode:
		for _, pc := range node.Cells {
			r.buf.Set(y+pc.Y, x+pc.X, pc.Cell)
		}
	case OverlayNode:
		r.overlays = append(r.overlays, pendingOverlay{
			node: node.Inner, x: x + node.X, y: y + node.Y, z: node.Z,
			style: style, w: w, h: h,
		})
	}
}

func (r *rasterizer) flushOverlays() {
	sort.SliceStable(r.overlays, func(i, j int) bool { return r.overlays[i].z < r.overlays[j].z })
	for _, ov := range r.overlays {
		r.draw(ov.node, ov.x, ov.y, ov.w, ov.h, ov.style)
	}
}

// childNaturalWidth estimates the column span a child consumes in a
// horizontal stack: explicit BoxNode width, text width, or the
// remaining space otherwise.
func childNaturalWidth(n RenderNode, remaining int) int {
	switch node := n.(type) {
	case BoxNode:
		if node.Width > 0 {
			return node.Width
		}
	case TextNode:
		return StringWidth(node.Text)
	case StyledNode:
		return childNaturalWidth(node.Inner, remaining)
	}
	return remaining
}

// childNaturalHeight estimates the row span a child consumes in a
// vertical stack: explicit BoxNode height, one row for text, or the
// remaining space otherwise.
func childNaturalHeight(n RenderNode, remaining int) int {
	switch node := n.(type) {
	case BoxNode:
		if node.Height > 0 {
			return node.Height
		}
	case TextNode:
		return 1
	case StyledNode:
		return childNaturalHeight(node.Inner, remaining)
	}
	return remaining
}
