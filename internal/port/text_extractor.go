package port

import "context"

// TextExtractor turns a policy document on disk into raw text.
// ExtractAlternate uses a slower, layout-preserving backend and is only requested for
// variants whose rules need it.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
	ExtractAlternate(ctx context.Context, path string) (string, error)
}
