// Package view renders persona data into a page: info pages, listings, a
// detail form with an edit session, and in-place table sorting.
//
// Every public operation returns an Outcome instead of an error. A
// degraded outcome carries a user-facing reason; the page content is left
// untouched whenever a gateway call fails.
package view
