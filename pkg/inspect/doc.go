// Package inspect serves a live document over HTTP for debugging
// delegated listeners.
//
// Routes:
//
//	GET    /document                 rendered HTML
//	GET    /listeners?node=SEL       registrations on the node
//	POST   /listeners                bind a recording listener
//	DELETE /listeners/{id}           remove one listener bound via POST
//	DELETE /listeners?node=SEL       remove every registration on the node
//	POST   /dispatch                 fire an event, report invocations
//	GET    /ws                       stream invocations as JSON
//	GET    /metrics                  Prometheus metrics
//
// Handlers and dispatch run under one mutex, so the document is only ever
// touched by one goroutine at a time.
package inspect
