package consecutives

import "context"

type ConsecutiveRepository interface {
	// Next atomically increments and returns the counter for (kind, year),
	// creating it at 1 when absent.
	Next(ctx context.Context, kind string, year int) (int, error)
	// Peek returns the number Next would mint, without mutating. Display only.
	Peek(ctx context.Context, kind string, year int) (int, error)
}

type Allocator interface {
	NextCode(ctx context.Context, kind string, year int) (string, error)
	PeekCode(ctx context.Context, kind string, year int) (string, error)
}
