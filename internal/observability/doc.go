// Package observability owns process logger construction and codec metrics.
package observability
