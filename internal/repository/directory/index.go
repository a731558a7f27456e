package directory

import (
	"fmt"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/db"
)

// IndexDefinition describes the provider search index over hashes
// under keyPrefix. The hcpcs tag holds a comma separated list of
// service codes so a prefix query matches any of them.
func IndexDefinition(keyPrefix string) *db.IndexDefinition {
	return db.NewIndex(keyPrefix + "providers:idx").
		Prefix(keyPrefix + "providers:").
		Tag("specialty").
		Tag("city").
		Tag("state").
		Tag("zipcode").
		TagWithOpts("hcpcs", ",", false).
		SortableNumeric("id").
		MustBuild()
}

// Key returns the hash key for one provider id.
func Key(keyPrefix string, id int64) string {
	return fmt.Sprintf("%sproviders:%d", keyPrefix, id)
}
