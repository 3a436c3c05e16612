package static

import (
	_ "embed"
)

// IndexHTML is the single-file web UI served at the root path.
// The frontend has no build step, it is plain HTML and vanilla JS
// talking to the /api/v1 endpoints.
//
//go:embed index.html
var IndexHTML []byte
