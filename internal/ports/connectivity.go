package ports

import "context"

// ConnectivityChecker answers whether the network is usable right now.
// Implementations must not cache and must return false when the state cannot be determined.
type ConnectivityChecker interface {
	IsReachable(ctx context.Context) bool
}
