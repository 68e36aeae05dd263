package db

// RawRow is the singleton row as stored, before segment decoding.
type RawRow struct {
	ID       int64
	RawInput string
	Segments string
}
