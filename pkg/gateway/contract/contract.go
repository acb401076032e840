// Package contract resolves the gateway routes the persona view calls from
// an OpenAPI document, keyed by operationId. The built-in document is
// embedded; deployments with a different gateway layout can load their own.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed plantilla.yaml
var embeddedDocument []byte

// Operation ids the view depends on.
const (
	OpHome   = "home"
	OpAbout  = "acercaDe"
	OpAll    = "getTodas"
	OpByID   = "getPorId"
	OpSetAll = "setTodo"
)

var requiredOperations = []string{OpHome, OpAbout, OpAll, OpByID, OpSetAll}

// ErrMissingOperation is returned when a document lacks a required
// operationId.
var ErrMissingOperation = errors.New("contract: missing operation")

// Route is a single gateway operation.
type Route struct {
	OperationID string
	Method      string
	Path        string
}

// Expand fills the path parameters in order of appearance. Values are path
// escaped. Surplus values are ignored; missing ones leave the parameter empty.
func (r Route) Expand(values ...string) string {
	var b strings.Builder
	rest := r.Path
	next := 0
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		if next < len(values) {
			b.WriteString(url.PathEscape(values[next]))
		}
		next++
		rest = rest[open+closing+1:]
	}
	return b.String()
}

// Routes groups the operations used by the view.
type Routes struct {
	Home   Route
	About  Route
	All    Route
	ByID   Route
	SetAll Route
}

// Load parses and validates an OpenAPI document and extracts the required
// operations.
func Load(ctx context.Context, data []byte) (Routes, error) {
	if err := ctx.Err(); err != nil {
		return Routes{}, err
	}
	if len(data) == 0 {
		return Routes{}, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Routes{}, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return Routes{}, fmt.Errorf("contract: validate: %w", err)
	}

	found := make(map[string]Route)
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil || op.OperationID == "" {
					continue
				}
				found[op.OperationID] = Route{
					OperationID: op.OperationID,
					Method:      strings.ToUpper(method),
					Path:        path,
				}
			}
		}
	}

	var missing []string
	for _, id := range requiredOperations {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Routes{}, fmt.Errorf("%w: %s", ErrMissingOperation, strings.Join(missing, ", "))
	}

	return Routes{
		Home:   found[OpHome],
		About:  found[OpAbout],
		All:    found[OpAll],
		ByID:   found[OpByID],
		SetAll: found[OpSetAll],
	}, nil
}

// LoadFile reads a document from disk.
func LoadFile(ctx context.Context, path string) (Routes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Routes{}, fmt.Errorf("contract: read %s: %w", path, err)
	}
	return Load(ctx, data)
}

var (
	defaultOnce   sync.Once
	defaultRoutes Routes
	defaultErr    error
)

// Default returns the routes from the embedded document.
func Default() (Routes, error) {
	defaultOnce.Do(func() {
		defaultRoutes, defaultErr = Load(context.Background(), embeddedDocument)
	})
	return defaultRoutes, defaultErr
}

// Document returns a copy of the embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), embeddedDocument...)
}
