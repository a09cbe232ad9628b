// Package frame owns the transport envelope for encoded values.
//
// Ownership boundary:
// - fixed 24-byte header (magic, version, compression, message id, payload length)
// - payload size limits
// - value framing: encode, compress, write and the reverse
//
// Frames carry no integrity or authentication data.
package frame
