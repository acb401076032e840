package tags_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/tags"
	"github.com/goliatone/go-plantilla/pkg/testsupport"
)

func allPlaceholders() string {
	var b strings.Builder
	for _, name := range tags.Names() {
		b.WriteString("<" + name + ">" + model.Placeholder(name) + "|" + model.Placeholder(name) + "</" + name + ">")
	}
	return b.String()
}

func TestSubstitute_ReplacesEveryOccurrence(t *testing.T) {
	out := tags.SubstituteRecord(allPlaceholders(), testsupport.BradyRecord())

	if got := tags.Placeholders(out); len(got) != 0 {
		t.Fatalf("residual placeholders: %v", got)
	}
	if !strings.Contains(out, "<NOMBRE>Tom Brady|Tom Brady</NOMBRE>") {
		t.Fatalf("nombre not replaced twice: %s", out)
	}
	if !strings.Contains(out, "<FECHA_NACIMIENTO>3/8/1977|3/8/1977</FECHA_NACIMIENTO>") {
		t.Fatalf("birth date not formatted: %s", out)
	}
	if !strings.Contains(out, "<ID>359810708356989100|359810708356989100</ID>") {
		t.Fatalf("id not replaced: %s", out)
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	store := tags.DefaultStore()
	records := []model.Record{
		testsupport.BradyRecord(),
		{Ref: model.Ref{Ref: model.RefID{ID: model.Text("sin-datos")}}},
		{},
	}
	for _, tpl := range []string{store.Header(), store.Row(), store.Footer(), store.Form(), allPlaceholders(), ""} {
		for _, rec := range records {
			once := tags.SubstituteRecord(tpl, rec)
			twice := tags.SubstituteRecord(once, rec)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("substitution not idempotent (-once +twice):\n%s", diff)
			}
		}
	}
}

func TestSubstitute_MissingDataRendersUndefined(t *testing.T) {
	rec := model.Record{Ref: model.Ref{Ref: model.RefID{ID: model.Text("7")}}}
	out := tags.SubstituteRecord("### ID ###:### NOMBRE ###:### FECHA_NACIMIENTO ###", rec)
	if out != "7:undefined:undefined/undefined/undefined" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSubstitutor_CustomMissingText(t *testing.T) {
	sub := tags.Substitutor{Missing: "-"}
	out := sub.Substitute("### NOMBRE ### (### APODO ###)", tags.Values{"NOMBRE": model.Text("Ana")})
	if out != "Ana (-)" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSubstitute_LeavesUnknownTokens(t *testing.T) {
	out := tags.Substitute("### OTRO ### ### NOMBRE ###", tags.Values{"NOMBRE": model.Text("Ana")})
	if out != "### OTRO ### Ana" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPlaceholders_DistinctInOrder(t *testing.T) {
	got := tags.Placeholders("### EDAD ### ### ID ### ### EDAD ### ### X ###")
	want := []string{"EDAD", "ID", "X"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}
}

func TestNames_ElevenPlaceholders(t *testing.T) {
	names := tags.Names()
	if len(names) != 11 {
		t.Fatalf("expected 11 placeholders, got %d: %v", len(names), names)
	}
	for _, want := range []string{"ID", "NOMBRE", "EDAD", "FECHA_NACIMIENTO", "EQUIPO", "DORSAL", "POSICION", "NACIONALIDAD", "ALTURA", "PESO", "APODO"} {
		if !tags.Recognized(want) {
			t.Fatalf("%s should be recognised", want)
		}
	}
}

func TestLoadStore_RejectsUnknownPlaceholders(t *testing.T) {
	fsys := fstest.MapFS{
		tags.HeaderFile: {Data: []byte("<table>")},
		tags.RowFile:    {Data: []byte("<tr><td>### APELLIDO ###</td></tr>")},
		tags.FooterFile: {Data: []byte("</table>")},
		tags.FormFile:   {Data: []byte("<form></form>")},
	}
	_, err := tags.LoadStore(fsys)
	if !errors.Is(err, tags.ErrUnknownPlaceholder) {
		t.Fatalf("expected ErrUnknownPlaceholder, got %v", err)
	}
}

func TestLoadStore_CustomFragments(t *testing.T) {
	fsys := fstest.MapFS{
		tags.HeaderFile: {Data: []byte("<ul>")},
		tags.RowFile:    {Data: []byte("<li>### NOMBRE ###</li>")},
		tags.FooterFile: {Data: []byte("</ul>")},
		tags.FormFile:   {Data: []byte("<input value=\"### NOMBRE ###\">")},
	}
	store, err := tags.LoadStore(fsys)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if store.Row() != "<li>### NOMBRE ###</li>" {
		t.Fatalf("unexpected row fragment %q", store.Row())
	}
}

func TestLoadStore_MissingFile(t *testing.T) {
	if _, err := tags.LoadStore(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error for missing fragments")
	}
}

func TestDefaultStore_HeaderCarriesTableID(t *testing.T) {
	if !strings.Contains(tags.DefaultStore().Header(), `id="tabla-personas"`) {
		t.Fatalf("header must declare the persona table id")
	}
}
