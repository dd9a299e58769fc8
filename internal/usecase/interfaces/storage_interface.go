package interfaces

import "context"

// IStorage is one durable string-keyed storage tier.
//
// Get reports found=false (and no error) when the key is absent. Removing an
// absent key is not an error.
type IStorage interface {
	Name() string
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
