package format

import (
	"fmt"

	"github.com/faanross/dnspeek/internal/resolver"
)

// Renderer turns a result set into output text.
type Renderer interface {
	Render(rs *resolver.ResultSet) (string, error)
}

// NewRenderer creates a renderer for the named output format.
func NewRenderer(name string, compact bool) (Renderer, error) {
	switch name {
	case "json":
		return jsonRenderer{}, nil
	case "table":
		return tableRenderer{compact: compact}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %v", name)
	}
}

type jsonRenderer struct{}

func (jsonRenderer) Render(rs *resolver.ResultSet) (string, error) {
	return JSON(rs)
}

type tableRenderer struct {
	compact bool
}

func (r tableRenderer) Render(rs *resolver.ResultSet) (string, error) {
	return Table(rs, r.compact), nil
}
