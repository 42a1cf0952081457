package extract

// Cache memoizes resolved Field values for one document. Empty results are stored too, so a
// cacheable Field is evaluated at most once. A Cache must not be shared between documents;
// it is not safe for concurrent use.
type Cache struct {
	values map[Field]string
}

// NewCache returns an empty per-document cache.
func NewCache() *Cache {
	return &Cache{values: make(map[Field]string)}
}

// Get returns the cached value of f and whether one was stored.
func (c *Cache) Get(f Field) (string, bool) {
	v, ok := c.values[f]
	return v, ok
}

// Put stores the resolved value of f.
func (c *Cache) Put(f Field, v string) {
	c.values[f] = v
}

// Len returns the number of cached Fields.
func (c *Cache) Len() int {
	return len(c.values)
}
