// Package api holds the contract of the booking backend this application
// consumes.
package api

import _ "embed"

// BackendSpec is the OpenAPI 3 description of the booking backend.
//
//go:embed backend.yaml
var BackendSpec []byte
