package render

import (
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/fancyqr/fancyqr/style"
)

const (
	// gapRatio is the share of a module edge painted by the gapped square.
	gapRatio = 0.8
	// roundRatio is the corner radius of a rounded module, relative to its edge.
	roundRatio = 0.35
)

// moduleShape paints finder modules with one primitive and every other
// module with another.
type moduleShape struct {
	eye  style.Drawer
	body style.Drawer
}

var _ standard.IShape = (*moduleShape)(nil)

func newModuleShape(eye, body style.Drawer) *moduleShape {
	return &moduleShape{eye: eye, body: body}
}

func (s *moduleShape) Draw(ctx *standard.DrawContext) {
	paint(ctx, s.body)
}

func (s *moduleShape) DrawFinder(ctx *standard.DrawContext) {
	paint(ctx, s.eye)
}

func paint(ctx *standard.DrawContext, d style.Drawer) {
	w, h := ctx.Edge()
	x, y := ctx.UpperLeft()
	fw, fh := float64(w), float64(h)

	switch d {
	case style.DrawerGappedSquare:
		gw, gh := fw*gapRatio, fh*gapRatio
		ctx.DrawRectangle(x+(fw-gw)/2, y+(fh-gh)/2, gw, gh)
	case style.DrawerCircle:
		ctx.DrawCircle(x+fw/2, y+fh/2, min(fw, fh)/2)
	case style.DrawerRounded:
		ctx.DrawRoundedRectangle(x, y, fw, fh, min(fw, fh)*roundRatio)
	default:
		ctx.DrawRectangle(x, y, fw, fh)
	}

	ctx.SetColor(ctx.Color())
	ctx.Fill()
}
