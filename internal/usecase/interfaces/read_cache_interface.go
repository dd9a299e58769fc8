package interfaces

// IReadCache is the in-process cache for read-mostly queries.
type IReadCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	DeletePrefix(prefix string) int
	Invalidate()
}
