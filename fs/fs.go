// Package appfs embeds the assets shipped inside the binaries: seed datasets, translation dictionaries,
// informational pages, JSON schemas, SQL migrations and templates.
package appfs

import "embed"

//go:embed data i18n pages schemas migrations all:templates
var FS embed.FS
