// Package datasets embeds the sample tables used by the default gallery.
package datasets

import (
	"embed"
	"io/fs"
)

//go:embed surface-temperature pay-gap tech-diversity
var files embed.FS

// FS returns the sample datasets, rooted so that paths look like
// "pay-gap/occupation-hourly-pay-by-gender-2017.csv".
func FS() fs.FS {
	return files
}
