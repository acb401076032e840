// Package model defines the persona record served by the gateway, the
// downloaded info envelope used by the home and about pages, and the field
// registry that ties logical fields to template placeholders, editable input
// ids and write payload keys. Scalars decode into Value, which keeps track of
// whether a field was present so renderers can tell "empty" from "absent".
package model
