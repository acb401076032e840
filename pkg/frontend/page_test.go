package frontend_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantilla/pkg/frontend"
	"github.com/goliatone/go-plantilla/pkg/render/template/pongo"
)

func newPage(t *testing.T, opts ...frontend.PageOption) *frontend.Page {
	t.Helper()
	page, err := frontend.NewPage(opts...)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	return page
}

const controls = `<form>
<input id="campo-a" value="uno" disabled>
<input id="campo-b" value="dos" disabled>
<button class="opcion-secundaria mostrar">Editar</button>
<button class="opcion-terciaria editar ocultar">Guardar</button>
<button class="opcion-terciaria editar ocultar">Cancelar</button>
</form>`

func TestNewPage_DefaultShell(t *testing.T) {
	page := newPage(t, frontend.WithBasePath("/app/"))

	if got := page.Find("base").AttrOr("href", ""); got != "/app/" {
		t.Fatalf("unexpected base href %q", got)
	}
	if page.Title() != "" || strings.TrimSpace(page.Content()) != "" {
		t.Fatalf("a fresh page should be empty, got title %q content %q", page.Title(), page.Content())
	}
	if page.Visible("#alerta") {
		t.Fatalf("alert should start hidden")
	}

	html, err := page.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.HasPrefix(strings.ToLower(html), "<!doctype html>") {
		t.Fatalf("expected doctype, got %q", html[:min(40, len(html))])
	}
}

func TestPage_Update(t *testing.T) {
	page := newPage(t)
	page.Update("Listado de personas", "<p>uno</p><p>dos</p>")

	if got := page.Title(); got != "Listado de personas" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := page.Content(); got != "<p>uno</p><p>dos</p>" {
		t.Fatalf("unexpected content %q", got)
	}

	page.Update("Otro", "")
	if got := page.Content(); got != "" {
		t.Fatalf("content should be replaced, got %q", got)
	}
}

func TestPage_ShowHideKeepsExactlyOneMarker(t *testing.T) {
	page := newPage(t)
	page.Update("t", controls)

	if n := page.Hide(".opcion-secundaria"); n != 1 {
		t.Fatalf("expected one secondary control, got %d", n)
	}
	if n := page.Show(".opcion-terciaria.editar"); n != 2 {
		t.Fatalf("expected two tertiary controls, got %d", n)
	}

	check := func(selector string, visible bool) {
		t.Helper()
		sel := page.Find(selector)
		for i := range sel.Length() {
			item := sel.Eq(i)
			if item.HasClass("mostrar") == item.HasClass("ocultar") {
				t.Fatalf("%s #%d must carry exactly one marker: %q", selector, i, item.AttrOr("class", ""))
			}
			if item.HasClass("mostrar") != visible {
				t.Fatalf("%s #%d visible=%v, want %v", selector, i, item.HasClass("mostrar"), visible)
			}
		}
	}
	check(".opcion-secundaria", false)
	check(".opcion-terciaria.editar", true)

	page.Show(".opcion-secundaria")
	page.Hide(".opcion-terciaria.editar")
	check(".opcion-secundaria", true)
	check(".opcion-terciaria.editar", false)
}

func TestPage_InputState(t *testing.T) {
	page := newPage(t)
	page.Update("t", controls)

	missing := page.Enable("campo-a", "campo-b", "campo-c")
	if diff := cmp.Diff([]string{"campo-c"}, missing); diff != "" {
		t.Fatalf("missing ids mismatch (-want +got):\n%s", diff)
	}
	if page.Disabled("campo-a") || page.Disabled("campo-b") {
		t.Fatalf("inputs should be enabled")
	}

	if !page.SetInputValue("campo-a", "nuevo") {
		t.Fatalf("set input value should find campo-a")
	}
	if v, ok := page.InputValue("campo-a"); !ok || v != "nuevo" {
		t.Fatalf("unexpected value %q (%v)", v, ok)
	}
	if _, ok := page.InputValue("campo-c"); ok {
		t.Fatalf("unknown inputs should report false")
	}

	page.Disable("campo-a", "campo-b")
	if !page.Disabled("campo-a") || !page.Disabled("campo-b") {
		t.Fatalf("inputs should be disabled again")
	}
}

func TestPage_Alert(t *testing.T) {
	page := newPage(t)
	page.SetAlert("Error: No se han podido acceder al API Gateway")
	if !page.Visible("#alerta") {
		t.Fatalf("alert should be visible")
	}
	if got := page.Alert(); got != "Error: No se han podido acceder al API Gateway" {
		t.Fatalf("unexpected alert %q", got)
	}
	page.ClearAlert()
	if page.Visible("#alerta") || page.Alert() != "" {
		t.Fatalf("alert should be cleared")
	}
}

func TestNewPage_RejectsShellWithoutRegions(t *testing.T) {
	engine, err := pongo.New(pongo.WithFS(fstest.MapFS{
		"incompleta.tmpl": {Data: []byte(`<html><body><h1 id="{{ title_id }}"></h1><div id="{{ content_id }}"></div></body></html>`)},
	}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	_, err = frontend.NewPage(frontend.WithShell(engine, "incompleta"))
	if !errors.Is(err, frontend.ErrMissingElement) {
		t.Fatalf("expected ErrMissingElement, got %v", err)
	}
}

func TestNewPage_RejectsInvalidMarkers(t *testing.T) {
	for _, m := range []frontend.Markers{
		{Show: "", Hide: "ocultar"},
		{Show: "igual", Hide: "igual"},
		{Show: "dos clases", Hide: "ocultar"},
	} {
		if _, err := frontend.NewPage(frontend.WithMarkers(m)); err == nil {
			t.Fatalf("expected error for markers %+v", m)
		}
	}
}
