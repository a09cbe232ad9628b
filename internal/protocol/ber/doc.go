// Package ber owns the TLV value codec.
//
// Ownership boundary:
// - tag table and value kinds
// - short/long form length fields
// - recursive value encode/decode
// - element walking over encoded buffers
//
// The package is pure: no I/O, no logging, no shared mutable state.
package ber
