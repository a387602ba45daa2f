// Package flac decodes FLAC stream metadata from the head of a stream.
//
// Only the signature and the STREAMINFO block are read, so the first 42 bytes
// of a file are enough.
package flac
