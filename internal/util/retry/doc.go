// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay, maximum delay and an optional error classifier. The sandbox
// client never retries on its own; callers such as the ensure command wrap
// provisioning calls with this package and decide which failures are worth
// another attempt.
package retry
