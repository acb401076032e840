// Package frontend holds the page the persona view writes to: a parsed HTML
// document with a title region, a content region and an alert region, plus
// the helpers that toggle control visibility and input state.
//
// Visibility is expressed with two marker classes. The defaults are
// "mostrar" and "ocultar"; a go-theme selection can remap them through the
// plantilla.visibility.show and plantilla.visibility.hide tokens.
package frontend
