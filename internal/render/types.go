package render

// Kind tags which variant a renderer is.
type Kind int

const (
	KindInline Kind = iota + 1
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// WebDisplayCode is the listing code of every inline renderer.
const WebDisplayCode = "Web"

// AsInline returns r as an InlineRenderer when r is tagged inline.
func AsInline(r Renderer) (InlineRenderer, bool) {
	if r == nil || r.Kind() != KindInline {
		return nil, false
	}
	ir, ok := r.(InlineRenderer)
	return ir, ok
}

// AsFile returns r as a FileRenderer when r is tagged file.
func AsFile(r Renderer) (FileRenderer, bool) {
	if r == nil || r.Kind() != KindFile {
		return nil, false
	}
	fr, ok := r.(FileRenderer)
	return fr, ok
}
