package contracts

import "context"

// SequenceRepository hands out monotonically increasing values per named
// sequence, backing the human-facing entity codes.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
