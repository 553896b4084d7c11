package main

import (
	"embed"
)

// embeddedFrontend contains the default page templates.
//
//go:embed frontend
var embeddedFrontend embed.FS
