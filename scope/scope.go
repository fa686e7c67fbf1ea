// Package scope is the producer runtime: a Scope implementation supplies
// search and preview bodies, and the Runner gives each query a fresh
// reply channel with exactly-once termination.
package scope

import (
	"context"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// Scope is implemented by producers. Bodies stream through the given
// reply and return when done; the runner converts the return value into
// the channel's terminal event, so a body normally never calls Finished
// itself. Returning a non-nil error terminates the channel with that
// error.
//
// Bodies must honor ctx: it is canceled when the consumer abandons the
// query.
type Scope interface {
	// Search handles one search query.
	Search(ctx context.Context, query *CannedQuery, metadata *SearchMetadata, r *reply.SearchReply) error

	// Preview handles one preview request for a previously pushed result.
	Preview(ctx context.Context, result *types.CategorisedResult, metadata *ActionMetadata, r *reply.PreviewReply) error
}
