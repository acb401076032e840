package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-plantilla/pkg/model"
)

// BradyRecord returns the reference persona used across tests.
func BradyRecord() model.Record {
	return model.NewRecord("359810708356989100", model.Data{
		Nombre:          model.Text("Tom Brady"),
		Edad:            model.Number(44),
		FechaNacimiento: []model.BirthDate{{Dia: model.Number(3), Mes: model.Number(8), Anio: model.Number(1977)}},
		Equipo:          model.Text("Tampa Bay Buccaneers"),
		Dorsal:          model.Number(12),
		Posicion:        model.Text("Quarterback"),
		Nacionalidad:    model.Text("Estados Unidos"),
		Altura:          model.Text("1.93 m"),
		Peso:            model.Text("102 kg"),
		Apodo:           model.Text("Tom Terrific"),
	})
}

// Persona builds a small record with the fields sorting cares about.
func Persona(id, nombre, equipo string) model.Record {
	return model.NewRecord(id, model.Data{
		Nombre:          model.Text(nombre),
		Edad:            model.Number(30),
		FechaNacimiento: []model.BirthDate{{Dia: model.Number(1), Mes: model.Number(1), Anio: model.Number(1990)}},
		Equipo:          model.Text(equipo),
		Dorsal:          model.Number(1),
		Posicion:        model.Text("Quarterback"),
		Nacionalidad:    model.Text("Estados Unidos"),
		Altura:          model.Text("1.90 m"),
		Peso:            model.Text("100 kg"),
		Apodo:           model.Text(nombre),
	})
}

// Records returns a small collection with duplicate names and teams so
// sorting tests can check stability.
func Records() []model.Record {
	return []model.Record{
		BradyRecord(),
		Persona("2", "Patrick Mahomes", "Kansas City Chiefs"),
		Persona("3", "Aaron Rodgers", "New York Jets"),
		Persona("4", "Josh Allen", "Buffalo Bills"),
		Persona("5", "Josh Allen", "Jacksonville Jaguars"),
		Persona("6", "aaron jones", "Minnesota Vikings"),
	}
}

// MustLoadRecords loads a JSON fixture holding either a bare array of
// records or the gateway envelope {"data": [...]}.
func MustLoadRecords(t *testing.T, path string) []model.Record {
	t.Helper()

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	return records
}

// LoadRecords reads a record fixture, returning an error for callers
// managing setup outside of *testing.T.
func LoadRecords(path string) ([]model.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: records path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read records: %w", err)
	}

	var envelope struct {
		Data []model.Record `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var out []model.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal records: %w", err)
	}
	return out, nil
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
