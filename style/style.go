package style

// Drawer is the primitive used to paint a single QR module.
type Drawer int

const (
	// DrawerSquare fills the whole module.
	DrawerSquare Drawer = iota
	// DrawerGappedSquare fills a centered square smaller than the module.
	DrawerGappedSquare
	// DrawerCircle fills the circle inscribed in the module.
	DrawerCircle
	// DrawerRounded fills the module with rounded corners.
	DrawerRounded
)

func (d Drawer) String() string {
	switch d {
	case DrawerGappedSquare:
		return "gapped-square"
	case DrawerCircle:
		return "circle"
	case DrawerRounded:
		return "rounded"
	default:
		return "square"
	}
}

// EyeStyle selects how the three finder patterns are drawn.
type EyeStyle string

const (
	EyeSquare EyeStyle = "square"
	EyeCircle EyeStyle = "circle"
	EyeDotted EyeStyle = "dotted"
	EyeNone   EyeStyle = "none"
)

// EyeStyles lists the known eye styles in display order.
func EyeStyles() []EyeStyle {
	return []EyeStyle{EyeSquare, EyeCircle, EyeDotted, EyeNone}
}

// ParseEyeStyle never fails: an unknown tag resolves to EyeSquare.
func ParseEyeStyle(s string) EyeStyle {
	switch e := EyeStyle(s); e {
	case EyeSquare, EyeCircle, EyeDotted, EyeNone:
		return e
	default:
		return EyeSquare
	}
}

// Drawer maps e to its drawing primitive. "none" paints rounded modules
// rather than omitting the eyes; that is the observed behavior of the tool
// this replaces and is kept as is.
func (e EyeStyle) Drawer() Drawer {
	switch e {
	case EyeCircle:
		return DrawerCircle
	case EyeDotted:
		return DrawerGappedSquare
	case EyeNone:
		return DrawerRounded
	case EyeSquare:
		return DrawerSquare
	default:
		return DrawerSquare
	}
}

// BodyStyle selects how data modules are drawn.
type BodyStyle string

const (
	BodyDefault BodyStyle = "default"
	BodyDotted  BodyStyle = "dotted"
	BodyLines   BodyStyle = "lines"
)

// BodyStyles lists the known body styles in display order.
func BodyStyles() []BodyStyle {
	return []BodyStyle{BodyDefault, BodyDotted, BodyLines}
}

// ParseBodyStyle never fails: an unknown tag resolves to BodyDefault.
func ParseBodyStyle(s string) BodyStyle {
	switch b := BodyStyle(s); b {
	case BodyDefault, BodyDotted, BodyLines:
		return b
	default:
		return BodyDefault
	}
}

// Drawer maps b to its drawing primitive.
func (b BodyStyle) Drawer() Drawer {
	switch b {
	case BodyDotted:
		return DrawerGappedSquare
	case BodyLines:
		return DrawerRounded
	case BodyDefault:
		return DrawerSquare
	default:
		return DrawerSquare
	}
}
