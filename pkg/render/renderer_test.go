package render_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/render"
	"github.com/goliatone/go-plantilla/pkg/tags"
	"github.com/goliatone/go-plantilla/pkg/testsupport"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return doc
}

func cellTexts(row *goquery.Selection) []string {
	var out []string
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cell.Text())
	})
	return out
}

func TestRenderRow_BradyCells(t *testing.T) {
	r := render.New()
	row := r.RenderRow(testsupport.BradyRecord())

	doc := parse(t, "<table><tbody>"+row+"</tbody></table>")
	rows := doc.Find("tbody tr")
	if rows.Length() != 1 {
		t.Fatalf("expected one row, got %d", rows.Length())
	}

	want := []string{
		"359810708356989100", "Tom Brady", "44", "3/8/1977", "Tampa Bay Buccaneers",
		"12", "Quarterback", "Estados Unidos", "1.93 m", "102 kg", "Tom Terrific",
	}
	if diff := cmp.Diff(want, cellTexts(rows.First())); diff != "" {
		t.Fatalf("row cells mismatch (-want +got):\n%s", diff)
	}
	if title, _ := rows.First().Attr("title"); title != "359810708356989100" {
		t.Fatalf("row title should carry the id, got %q", title)
	}
}

func TestRenderTable_EmptyIsHeaderPlusFooter(t *testing.T) {
	r := render.New()
	store := r.Store()

	if got, want := r.RenderTable(nil), store.Header()+store.Footer(); got != want {
		t.Fatalf("empty table mismatch:\nwant %q\ngot  %q", want, got)
	}
	if got, want := r.RenderTable([]model.Record{}), store.Header()+store.Footer(); got != want {
		t.Fatalf("empty slice table mismatch")
	}
}

func TestRenderTable_KeepsInputOrder(t *testing.T) {
	r := render.New()
	records := testsupport.Records()
	out := r.RenderTable(records)

	doc := parse(t, out)
	var names []string
	doc.Find("#tabla-personas tbody tr").Each(func(_ int, row *goquery.Selection) {
		names = append(names, row.Find("td").Eq(1).Text())
	})

	var want []string
	for _, rec := range records {
		want = append(want, rec.Field(model.FieldNombre).String())
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("row order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderForm_PrepopulatedAndDisabled(t *testing.T) {
	r := render.New()
	rec := testsupport.BradyRecord()
	doc := parse(t, r.RenderForm(rec))

	for _, f := range model.Fields {
		input := doc.Find("#" + f.InputID)
		if input.Length() != 1 {
			t.Fatalf("expected one input %s, got %d", f.InputID, input.Length())
		}
		if got := input.AttrOr("value", ""); got != rec.Field(f.Name).String() {
			t.Fatalf("input %s: want value %q, got %q", f.InputID, rec.Field(f.Name).String(), got)
		}
		if _, disabled := input.Attr("disabled"); !disabled {
			t.Fatalf("input %s should start disabled", f.InputID)
		}
		if got := input.AttrOr("name", ""); got != f.PayloadKey {
			t.Fatalf("input %s: want name %q, got %q", f.InputID, f.PayloadKey, got)
		}
	}
	if tags.Placeholders(r.RenderForm(rec)) != nil {
		t.Fatalf("form should not keep placeholders")
	}
}

func TestRenderForms_EmptyCollection(t *testing.T) {
	if got := render.New().RenderForms(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderer_MissingTextOption(t *testing.T) {
	r := render.New(render.WithMissingText("?"))
	row := r.RenderRow(model.Record{Ref: model.Ref{Ref: model.RefID{ID: model.Text("1")}}})
	if !strings.Contains(row, "<td>?</td>") || !strings.Contains(row, "<td>?/?/?</td>") {
		t.Fatalf("custom missing text not applied: %s", row)
	}
}
