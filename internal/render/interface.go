package render

import (
	"io"

	"reporting-srv/internal/dataset"
)

// Renderer turns a data set into a presentation. Every renderer is exactly one of
// InlineRenderer or FileRenderer, as reported by Kind.
type Renderer interface {
	Name() string
	Label() string
	Kind() Kind
}

// InlineRenderer renders live from the raw data set. Nothing is stored.
type InlineRenderer interface {
	Renderer
	// LinkURL is where a client is sent to view the rendering.
	LinkURL() string
	ContentType() string
	RenderInline(w io.Writer, ds *dataset.DataSet, argument string) error
}

// FileRenderer produces bytes once; they are stored and downloaded later.
type FileRenderer interface {
	Renderer
	Filename(def dataset.Definition, argument string) (string, error)
	ContentType(argument string) string
	Render(w io.Writer, ds *dataset.DataSet, argument string) error
}
