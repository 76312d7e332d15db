// Package enrichment defines the optional web-text collaborator used to
// ground candidate descriptions. Absent text is normal, not an error.
package enrichment

import "context"

// Source fetches supplementary text for a named place. An empty string means
// nothing was found; callers degrade silently.
type Source interface {
	FetchText(ctx context.Context, name, city string) (string, error)
}
