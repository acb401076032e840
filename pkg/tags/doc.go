// Package tags implements the placeholder micro-format used by the persona
// fragments. A placeholder is the reserved token `### NAME ###`; Substitute
// replaces every recognised token with the matching value in one pass.
// Store keeps the header, row, footer and form fragments that use them.
package tags
