package result

import "sync"

// Token identifies one request issued against a Cell
type Token uint64

// Cell holds the envelope of one presentation unit. Only the request that
// most recently called Begin may settle it, and only out of Loading.
type Cell[T any] struct {
	mu      sync.RWMutex
	current Envelope[T]
	token   Token
}

// NewCell returns a cell in the Loading state with no request issued
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{current: Loading[T]()}
}

// Begin resets the cell to Loading and returns the token of the new request
func (c *Cell[T]) Begin() Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	c.current = Loading[T]()
	return c.token
}

// Settle applies env if tok is still the latest request and the cell is Loading.
// Loading envelopes are ignored. It reports whether the cell changed.
func (c *Cell[T]) Settle(tok Token, env Envelope[T]) bool {
	if env.IsLoading() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tok != c.token || !c.current.IsLoading() {
		return false
	}
	c.current = env
	return true
}

// Get returns the current envelope
func (c *Cell[T]) Get() Envelope[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
