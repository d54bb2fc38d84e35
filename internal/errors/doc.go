// Package apperrors holds the error types shared by the command line, the
// REPL, the dashboard and the HTTP API, together with the mapping from
// errors to process exit codes.
//
// Types that carry a cause implement Unwrap, so callers inspect them with
// errors.Is and errors.As.
package apperrors
