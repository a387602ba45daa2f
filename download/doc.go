// Package download fetches byte ranges of a track's stream.
//
// The stream URL comes from the track's direct manifest. Progress callbacks
// report the bytes read so far and the full size of the stream as announced
// by the server's Content-Range header.
package download
