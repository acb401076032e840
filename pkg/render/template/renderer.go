package template

import (
	"io"
)

// Renderer renders named templates or inline template strings. Output is
// returned and, when writers are given, copied to each of them.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
