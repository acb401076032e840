package tags

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// File names looked up by LoadStore.
const (
	HeaderFile = "cabecera.html"
	RowFile    = "cuerpo.html"
	FooterFile = "pie.html"
	FormFile   = "formulario.html"
)

// TableID is the element id carried by the built-in table header. Sorting
// looks the table up by this id.
const TableID = "tabla-personas"

// TemplatesFS exposes the built-in fragment bundle rooted at the fragment
// files, so callers can copy it as a starting point for custom fragments.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
