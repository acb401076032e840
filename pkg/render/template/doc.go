// Package template defines the seam the page shell is rendered through, so
// the frontend does not depend on a particular template engine.
package template
