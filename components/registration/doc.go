// Package registration serves the registration form over net/http.
//
// The form route answers GET and HEAD with an empty form and POST with either
// the re-rendered form (inline errors, submit disabled) or the submitted
// summary. A websocket route streams validation results per keystroke and a
// schema route publishes an OpenAPI description of the POST body.
package registration
