package processor

import "context"

// Processor summarizes one transcript file dropped into the inbox.
type Processor interface {
	Process(ctx context.Context, path string) error
}
