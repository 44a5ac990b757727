// Package connection keeps a client.Client connected from the application's
// polling loop.
//
// A Redialer is ticked from the same loop that calls Client.Sync. Whenever
// the client is idle (a connect failed) or closed (the stream ended), the
// Redialer issues a new Connect once the backoff delay has passed. Nothing
// runs in the background and Tick never blocks.
//
// # Backoff
//
// The first connect is issued on the first tick. Later attempts are spaced
// with exponential backoff:
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s, 32s
//  3. Maximum delay: 60 seconds
//  4. Reset to 1s once the client reports a connection
//
// Each delay gets up to 25% random jitter:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
package connection
