package db

import (
	"errors"
	"fmt"
)

// ErrorKind classifies storage failures.
type ErrorKind int

const (
	// StorageUnavailable: the database could not be opened, created or
	// initialized, including files that are not SQLite databases.
	StorageUnavailable ErrorKind = iota + 1
	// TransactionFailure: a read or the delete+insert unit of work failed.
	// The previously stored document is intact.
	TransactionFailure
	// EncodingFailure: the segment list could not be serialized.
	EncodingFailure
	// DecodingFailure: the stored segments column does not decode.
	DecodingFailure
)

// Sentinels for errors.Is matching against a *StorageError.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrTransactionFailure = errors.New("transaction failure")
	ErrEncodingFailure    = errors.New("encoding failure")
	ErrDecodingFailure    = errors.New("decoding failure")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case StorageUnavailable:
		return ErrStorageUnavailable
	case TransactionFailure:
		return ErrTransactionFailure
	case EncodingFailure:
		return ErrEncodingFailure
	case DecodingFailure:
		return ErrDecodingFailure
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// StorageError is the typed error returned by every Store operation.
type StorageError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *StorageError) Unwrap() []error {
	var errs []error
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func storageErr(kind ErrorKind, op string, err error) error {
	return &StorageError{Kind: kind, Op: op, Err: err}
}
