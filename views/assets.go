package views

import "embed"

// StaticPath is where Assets are mounted.
const StaticPath = "/static/"

// Assets holds the stylesheet and the toast dismiss script.
//
//go:embed static
var Assets embed.FS
