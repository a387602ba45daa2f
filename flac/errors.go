package flac

import "errors"

var (
	// ErrNotFLAC indicates the data does not start with the fLaC signature.
	ErrNotFLAC = errors.New("flac: missing stream signature")

	// ErrShortData indicates fewer bytes than the signature and STREAMINFO need.
	ErrShortData = errors.New("flac: data too short for stream info")

	// ErrNoStreamInfo indicates the first metadata block is not STREAMINFO.
	ErrNoStreamInfo = errors.New("flac: first metadata block is not stream info")
)
