package pool

// GiveAll gives every item in items to p.
func GiveAll[E any](p Pool[E], items ...*E) {
	for _, item := range items {
		p.Give(item)
	}
}

// Lease takes an item from p, passes it to fn, and gives it back when fn
// returns, including when fn panics.
//
// Example:
//
//	pool.Lease(buffers, func(b *bytes.Buffer) {
//	    b.WriteString("hello")
//	    send(b.Bytes())
//	})
func Lease[E any](p Pool[E], fn func(*E)) {
	item := p.Take()
	defer p.Give(item)
	fn(item)
}

// With is Lease for functions that produce a result.
func With[E, R any](p Pool[E], fn func(*E) R) R {
	item := p.Take()
	defer p.Give(item)
	return fn(item)
}
