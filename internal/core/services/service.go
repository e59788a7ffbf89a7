package services

import "context"

// Service is a single use case. Decorators (authentication, rate limiting)
// wrap a Service and return one with the same signature.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
