package feed

// Cursor tracks the last successfully loaded feed page. It is a passive
// 1-based counter: suppression of concurrent duplicate page requests is the
// caller's job (see services.FeedService and its in-flight flag).
type Cursor struct {
	current int
}

func NewCursor() *Cursor {
	return &Cursor{current: 1}
}

// Current returns the last page that loaded successfully.
func (c *Cursor) Current() int {
	return c.current
}

// Next returns the page a load-more request should fetch.
func (c *Cursor) Next() int {
	return c.current + 1
}

// Advance moves the cursor forward by one page. Call it only after the fetch
// for Next succeeded.
func (c *Cursor) Advance() {
	c.current++
}

// Reset rewinds the cursor to page 1, for pull-to-refresh.
func (c *Cursor) Reset() {
	c.current = 1
}
