package database

import "context"

// Transactor runs fn in a transaction carried by ctx.
// Repositories called with that ctx join the transaction; nested calls reuse it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
