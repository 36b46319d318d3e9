package swhid

import "errors"

var (
	// ErrMalformedIdentifier covers bad namespace, version, or overall
	// shape of a textual identifier.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrUnknownObjectKind is returned for a kind tag outside the five
	// recognized tags.
	ErrUnknownObjectKind = errors.New("unknown object kind")

	// ErrMalformedHash is returned when the hash part is not exactly
	// 40 lowercase hex characters.
	ErrMalformedHash = errors.New("malformed hash")

	// ErrUnknownQualifier is returned for a qualifier key outside the
	// recognized set.
	ErrUnknownQualifier = errors.New("unknown qualifier")

	// ErrInvalidQualifierValue is returned when a recognized qualifier
	// carries a value failing its grammar. The wrapping message names
	// the qualifier and the reason.
	ErrInvalidQualifierValue = errors.New("invalid qualifier value")
)
