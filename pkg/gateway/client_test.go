package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantilla/pkg/gateway"
	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/testsupport"
)

func newClient(t *testing.T, gw *testsupport.Gateway, opts ...gateway.Option) *gateway.Client {
	t.Helper()
	client, err := gateway.New(gw.URL(), opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNew_RequiresAbsoluteURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "/plantilla", "localhost"} {
		if _, err := gateway.New(raw); err == nil {
			t.Fatalf("expected error for base url %q", raw)
		}
	}
}

func TestClient_HomeAndAbout(t *testing.T) {
	gw := testsupport.NewGateway(t, nil)
	client := newClient(t, gw)

	home, err := client.Home(testsupport.Context())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if !home.HasAll() {
		t.Fatalf("expected every info field to be present: %+v", home)
	}
	if got := home.Mensaje.String(); got != "Microservicio MS Plantilla: home" {
		t.Fatalf("unexpected mensaje %q", got)
	}

	about, err := client.About(testsupport.Context())
	if err != nil {
		t.Fatalf("about: %v", err)
	}
	if got := about.Autor.String(); got != "Autor de prueba" {
		t.Fatalf("unexpected autor %q", got)
	}

	want := []string{"GET /plantilla/", "GET /plantilla/acercade"}
	if diff := cmp.Diff(want, gw.Requests()); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_InfoNonObjectHasNoFields(t *testing.T) {
	gw := testsupport.NewGateway(t, nil)
	gw.SetHome(`23`)
	client := newClient(t, gw)

	info, err := client.Home(testsupport.Context())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if info.Has(model.InfoMensaje) {
		t.Fatalf("expected no fields for a non-object payload: %+v", info)
	}
}

func TestClient_InfoMalformedJSON(t *testing.T) {
	gw := testsupport.NewGateway(t, nil)
	gw.SetAbout(`{"mensaje": `)
	client := newClient(t, gw)

	if _, err := client.About(testsupport.Context()); !errors.Is(err, gateway.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestClient_AllUnwrapsEnvelope(t *testing.T) {
	gw := testsupport.NewGateway(t, testsupport.Records())
	client := newClient(t, gw)

	records, err := client.All(testsupport.Context())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != len(testsupport.Records()) {
		t.Fatalf("expected %d records, got %d", len(testsupport.Records()), len(records))
	}
	if got := records[0].Field(model.FieldNombre).String(); got != "Tom Brady" {
		t.Fatalf("unexpected first record %q", got)
	}
	if got := records[0].Field(model.FieldFechaNacimiento).String(); got != "3/8/1977" {
		t.Fatalf("unexpected birth date %q", got)
	}
}

func TestClient_ByID(t *testing.T) {
	gw := testsupport.NewGateway(t, testsupport.Records())
	client := newClient(t, gw)

	rec, err := client.ByID(testsupport.Context(), "4")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got := rec.Field(model.FieldEquipo).String(); got != "Buffalo Bills" {
		t.Fatalf("unexpected equipo %q", got)
	}

	_, err = client.ByID(testsupport.Context(), "404")
	var statusErr gateway.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", statusErr.StatusCode())
	}
}

func TestClient_SetAllSendsEveryField(t *testing.T) {
	gw := testsupport.NewGateway(t, testsupport.Records())
	client := newClient(t, gw)

	rec := testsupport.BradyRecord()
	payload := gateway.PayloadFromRecord(rec)
	payload["nombre_persona"] = "Thomas Brady"

	if err := client.SetAll(testsupport.Context(), payload); err != nil {
		t.Fatalf("set all: %v", err)
	}

	writes := gw.Writes()
	if len(writes) != 1 {
		t.Fatalf("expected one write, got %d", len(writes))
	}
	want := map[string]string{
		"id_persona":              "359810708356989100",
		"nombre_persona":          "Thomas Brady",
		"edad_persona":            "44",
		"fechaNacimiento_persona": "3/8/1977",
		"equipo_persona":          "Tampa Bay Buccaneers",
		"dorsal_persona":          "12",
		"posicion_persona":        "Quarterback",
		"nacionalidad_persona":    "Estados Unidos",
		"altura_persona":          "1.93 m",
		"peso_persona":            "102 kg",
		"apodo_persona":           "Tom Terrific",
	}
	if diff := cmp.Diff(want, writes[0]); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	stored := gw.Records()[0]
	if got := stored.Field(model.FieldNombre).String(); got != "Thomas Brady" {
		t.Fatalf("expected the gateway to store the new name, got %q", got)
	}
}

func TestClient_SetAllRequiresID(t *testing.T) {
	gw := testsupport.NewGateway(t, nil)
	client := newClient(t, gw)

	if err := client.SetAll(testsupport.Context(), gateway.Payload{"nombre_persona": "x"}); err == nil {
		t.Fatalf("expected error for payload without id")
	}
	if len(gw.Writes()) != 0 {
		t.Fatalf("no request should reach the gateway")
	}
}

func TestClient_StatusErrors(t *testing.T) {
	gw := testsupport.NewGateway(t, testsupport.Records())
	gw.FailWith(http.StatusBadGateway)
	client := newClient(t, gw)

	_, err := client.All(testsupport.Context())
	var statusErr gateway.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode() != http.StatusBadGateway {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	client, err := gateway.New("http://127.0.0.1:1", gateway.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Home(context.Background()); !errors.Is(err, gateway.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	gw := testsupport.NewGateway(t, testsupport.Records())
	client := newClient(t, gw)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.All(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClient_SharedReadSurvivesCallerCancel(t *testing.T) {
	arrived := make(chan struct{}, 4)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"ref":{"@ref":{"id":"1"}},"data":{"nombre":"Tom Brady"}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := gateway.New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.All(ctx)
		firstErr <- err
	}()
	<-arrived

	type result struct {
		records []model.Record
		err     error
	}
	second := make(chan result, 1)
	go func() {
		records, err := client.All(context.Background())
		second <- result{records, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancelled caller to get context.Canceled, got %v", err)
	}

	close(release)
	select {
	case got := <-second:
		if got.err != nil {
			t.Fatalf("second caller: %v", got.err)
		}
		if len(got.records) != 1 {
			t.Fatalf("expected one record, got %d", len(got.records))
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("second caller did not return")
	}
}

func TestPayload_Accessors(t *testing.T) {
	p := gateway.NewPayload("7", map[model.FieldName]string{model.FieldApodo: "El Siete"})
	if p.ID() != "7" {
		t.Fatalf("unexpected id %q", p.ID())
	}
	if v, ok := p.Value(model.FieldApodo); !ok || v != "El Siete" {
		t.Fatalf("unexpected apodo %q (%v)", v, ok)
	}
	if v, ok := p.Value(model.FieldPeso); !ok || v != "" {
		t.Fatalf("editable fields without values should be sent empty, got %q (%v)", v, ok)
	}
	if len(p) != len(model.Fields) {
		t.Fatalf("expected %d keys, got %d", len(model.Fields), len(p))
	}
}
