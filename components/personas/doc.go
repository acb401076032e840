// Package personas serves the persona view over net/http. Every route runs
// one view operation and answers with the whole page; degraded outcomes
// show the reason in the page alert and in the X-Plantilla-Alert header.
//
// Routes, relative to the mount path:
//
//	GET  /                          home info
//	GET  /acercade                  about info
//	GET  /personas[?orden=nombre|equipo]
//	GET  /personas/editables
//	GET  /personas/{id}[?vista=tabla]
//	POST /personas/ordenar/{columna}
//	POST /personas/{id}/editar
//	POST /personas/{id}/cancelar
//	POST /personas/{id}/guardar
package personas
