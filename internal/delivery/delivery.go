// Package delivery defines the contract every transport front-end satisfies.
package delivery

import "context"

// Delivery is a transport front-end (HTTP today) started by the bootstrap.
type Delivery interface {
	Serve(ctx context.Context) error
}
