// Package web embeds the files served as-is: the recipe documents and the
// stylesheet.
package web

import "embed"

//go:embed recipes/*.json static/styles.css
var Assets embed.FS
