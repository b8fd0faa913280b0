// Package web holds the browser client served at "/".
package web

import _ "embed"

// Index is the single page client. It draws the PNG rendered by the service and
// forwards pointer and keyboard events over the session websocket.
//
//go:embed index.html
var Index []byte
