package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-plantilla/pkg/model"
)

// DefaultHomeJSON and DefaultAboutJSON are served by a fresh Gateway.
const (
	DefaultHomeJSON  = `{"mensaje": "Microservicio MS Plantilla: home", "autor": "Autor de prueba", "email": "autor@example.com", "fecha": "03/02/2023"}`
	DefaultAboutJSON = `{"mensaje": "Microservicio MS Plantilla: acerca de", "autor": "Autor de prueba", "email": "autor@example.com", "fecha": "03/02/2023"}`
)

// Gateway is an in-memory stand-in for the API gateway and the persona
// microservice behind it.
type Gateway struct {
	mu       sync.Mutex
	server   *httptest.Server
	home     string
	about    string
	records  []model.Record
	writes   []map[string]string
	requests []string
	failAll  int
}

// NewGateway starts a fake gateway serving records. The server is closed
// when the test ends.
func NewGateway(t *testing.T, records []model.Record) *Gateway {
	t.Helper()

	g := &Gateway{
		home:    DefaultHomeJSON,
		about:   DefaultAboutJSON,
		records: append([]model.Record(nil), records...),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /plantilla/{$}", g.serveRaw(func() string { return g.home }))
	mux.HandleFunc("GET /plantilla/acercade", g.serveRaw(func() string { return g.about }))
	mux.HandleFunc("GET /plantilla/getTodas", g.handleAll)
	mux.HandleFunc("GET /plantilla/getPorId/{id}", g.handleByID)
	mux.HandleFunc("POST /plantilla/setTodo/", g.handleSetAll)

	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		g.requests = append(g.requests, r.Method+" "+r.URL.Path)
		status := g.failAll
		g.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(g.server.Close)
	return g
}

// URL returns the gateway base URL.
func (g *Gateway) URL() string {
	return g.server.URL
}

// SetHome replaces the raw JSON served by the home route.
func (g *Gateway) SetHome(raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.home = raw
}

// SetAbout replaces the raw JSON served by the about route.
func (g *Gateway) SetAbout(raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.about = raw
}

// FailWith makes every route answer with status until reset with 0.
func (g *Gateway) FailWith(status int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failAll = status
}

// Records returns a copy of the stored records.
func (g *Gateway) Records() []model.Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Record(nil), g.records...)
}

// Writes returns every payload received by the setTodo route.
func (g *Gateway) Writes() []map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]string(nil), g.writes...)
}

// Requests returns "METHOD /path" for every request seen.
func (g *Gateway) Requests() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.requests...)
}

func (g *Gateway) serveRaw(body func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		g.mu.Lock()
		payload := body()
		g.mu.Unlock()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(payload))
	}
}

func (g *Gateway) handleAll(w http.ResponseWriter, _ *http.Request) {
	g.mu.Lock()
	records := append([]model.Record{}, g.records...)
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (g *Gateway) handleByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, rec := range g.records {
		if rec.ID().String() == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "persona no encontrada"})
}

func (g *Gateway) handleSetAll(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes = append(g.writes, payload)

	id := payload["id_persona"]
	for i, rec := range g.records {
		if rec.ID().String() != id {
			continue
		}
		g.records[i] = applyPayload(rec, payload)
		writeJSON(w, http.StatusOK, g.records[i])
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "persona no encontrada"})
}

func applyPayload(rec model.Record, payload map[string]string) model.Record {
	data := model.Data{}
	if rec.Data != nil {
		data = *rec.Data
	}
	set := func(key string, dst *model.Value) {
		if v, ok := payload[key]; ok {
			*dst = model.Text(v)
		}
	}
	set("nombre_persona", &data.Nombre)
	set("edad_persona", &data.Edad)
	set("equipo_persona", &data.Equipo)
	set("dorsal_persona", &data.Dorsal)
	set("posicion_persona", &data.Posicion)
	set("nacionalidad_persona", &data.Nacionalidad)
	set("altura_persona", &data.Altura)
	set("peso_persona", &data.Peso)
	set("apodo_persona", &data.Apodo)
	if raw, ok := payload["fechaNacimiento_persona"]; ok {
		parts := strings.SplitN(raw, "/", 3)
		if len(parts) == 3 {
			data.FechaNacimiento = []model.BirthDate{{
				Dia:  model.Text(parts[0]),
				Mes:  model.Text(parts[1]),
				Anio: model.Text(parts[2]),
			}}
		}
	}
	rec.Data = &data
	return rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
