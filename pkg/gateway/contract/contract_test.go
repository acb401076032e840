package contract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantilla/pkg/gateway/contract"
)

func TestDefault_ResolvesGatewayRoutes(t *testing.T) {
	routes, err := contract.Default()
	if err != nil {
		t.Fatalf("default routes: %v", err)
	}

	want := contract.Routes{
		Home:   contract.Route{OperationID: "home", Method: "GET", Path: "/plantilla/"},
		About:  contract.Route{OperationID: "acercaDe", Method: "GET", Path: "/plantilla/acercade"},
		All:    contract.Route{OperationID: "getTodas", Method: "GET", Path: "/plantilla/getTodas"},
		ByID:   contract.Route{OperationID: "getPorId", Method: "GET", Path: "/plantilla/getPorId/{idPersona}"},
		SetAll: contract.Route{OperationID: "setTodo", Method: "POST", Path: "/plantilla/setTodo/"},
	}
	if diff := cmp.Diff(want, routes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestRoute_Expand(t *testing.T) {
	r := contract.Route{Path: "/plantilla/getPorId/{idPersona}"}
	if got := r.Expand("359810708356989100"); got != "/plantilla/getPorId/359810708356989100" {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := r.Expand("a b/c"); got != "/plantilla/getPorId/a%20b%2Fc" {
		t.Fatalf("values should be path escaped, got %q", got)
	}
	if got := (contract.Route{Path: "/plantilla/getTodas"}).Expand("ignored"); got != "/plantilla/getTodas" {
		t.Fatalf("routes without params should not change, got %q", got)
	}
}

func TestLoad_MissingOperation(t *testing.T) {
	doc := []byte(`openapi: 3.0.3
info:
  title: parcial
  version: 1.0.0
paths:
  /plantilla/:
    get:
      operationId: home
      responses:
        "200":
          description: ok
`)
	_, err := contract.Load(context.Background(), doc)
	if !errors.Is(err, contract.ErrMissingOperation) {
		t.Fatalf("expected ErrMissingOperation, got %v", err)
	}
}

func TestLoad_RejectsEmptyAndInvalid(t *testing.T) {
	if _, err := contract.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := contract.Load(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestLoad_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := contract.Load(ctx, contract.Document()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
