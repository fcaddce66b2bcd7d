package domain

// Customer identifies the owner of a cart. It carries no behaviour and is
// comparable, so it can key a map directly.
type Customer struct {
	ID      int64
	Contact string
}
