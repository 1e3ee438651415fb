package gateway

import (
	_ "embed"
)

// SwaggerJSON is the OpenAPI document of the http api.
//
//go:embed swagger.json
var SwaggerJSON []byte
