package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-plantilla/pkg/gateway"
)

// Status tags the result of a public view operation.
type Status int

const (
	StatusOK Status = iota
	StatusDegraded
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// User-facing reasons attached to degraded outcomes.
const (
	ReasonUnreachable   = "Error: No se han podido acceder al API Gateway"
	ReasonGatewayStatus = "Error: El API Gateway ha respondido con un error"
	ReasonMalformed     = "Error: Los datos recibidos del API Gateway no son válidos"
	ReasonCancelled     = "Error: La operación se ha cancelado"
	ReasonNoTable       = "No hay ningún listado de personas que ordenar"
	ReasonNoForm        = "No hay ninguna persona mostrada para editar"
	ReasonNotEditing    = "No hay ninguna edición en curso"
	ReasonNoDisplayed   = "No hay datos almacenados de la persona mostrada"
)

// Outcome reports how an operation went. Operations never panic and never
// return bare errors; presenters decide how a degraded outcome is surfaced.
type Outcome struct {
	Status Status
	Reason string
	Err    error
}

// OK reports whether the operation completed normally.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

func (o Outcome) String() string {
	if o.OK() {
		return o.Status.String()
	}
	if o.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", o.Status, o.Reason, o.Err)
	}
	return fmt.Sprintf("%s: %s", o.Status, o.Reason)
}

func succeeded() Outcome {
	return Outcome{Status: StatusOK}
}

func degraded(reason string, err error) Outcome {
	return Outcome{Status: StatusDegraded, Reason: reason, Err: err}
}

// gatewayFailure maps a gateway error onto a degraded outcome.
func gatewayFailure(err error) Outcome {
	var statusErr gateway.StatusError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		if errors.Is(err, gateway.ErrUnreachable) && errors.Is(err, context.DeadlineExceeded) {
			return degraded(ReasonUnreachable, err)
		}
		return degraded(ReasonCancelled, err)
	case errors.As(err, &statusErr):
		return degraded(fmt.Sprintf("%s (%d)", ReasonGatewayStatus, statusErr.StatusCode()), err)
	case errors.Is(err, gateway.ErrMalformedResponse):
		return degraded(ReasonMalformed, err)
	default:
		return degraded(ReasonUnreachable, err)
	}
}
