package canvas

import "errors"

var (
	ErrSnapshotSize     = errors.New("snapshot-size-mismatch")
	ErrSnapshotEncoding = errors.New("snapshot-encoding")
)
