package aura

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when a header carries a missing or
	// malformed consensus seal.
	ErrInvalidFormat = errors.New("invalid seal format")

	// ErrInvalidSignature is returned when a seal's signature does not check
	// out against the expected authority's public key.
	ErrInvalidSignature = errors.New("invalid seal signature")

	// ErrEmptyAuthoritySet indicates that an authority set with no entries
	// was supplied where at least one authority is required.
	ErrEmptyAuthoritySet = errors.New("authority set is empty")
)

// ConfigurationError indicates that a component was initialized with invalid
// or inconsistent parameters. Configuration errors are fatal at start-up.
type ConfigurationError struct {
	err error
}

func NewConfigurationErrorf(msg string, args ...interface{}) error {
	return ConfigurationError{fmt.Errorf(msg, args...)}
}

func (e ConfigurationError) Error() string { return e.err.Error() }
func (e ConfigurationError) Unwrap() error { return e.err }

// IsConfigurationError returns whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var e ConfigurationError
	return errors.As(err, &e)
}

// InvalidBlockError indicates that the block with the given ID violates the
// consensus rules and must be rejected. The wrapped error documents which
// rule was violated. The block must not be imported or relayed as valid.
type InvalidBlockError struct {
	BlockID Identifier
	Slot    Slot
	Err     error
}

func NewInvalidBlockErrorf(blockID Identifier, slot Slot, msg string, args ...interface{}) error {
	return InvalidBlockError{
		BlockID: blockID,
		Slot:    slot,
		Err:     fmt.Errorf(msg, args...),
	}
}

func (e InvalidBlockError) Error() string {
	return fmt.Sprintf("invalid block %x for slot %d: %s", e.BlockID, e.Slot, e.Err.Error())
}

func (e InvalidBlockError) Unwrap() error {
	return e.Err
}

// IsInvalidBlockError returns whether an error is InvalidBlockError.
func IsInvalidBlockError(err error) bool {
	var e InvalidBlockError
	return errors.As(err, &e)
}

// FutureSlotError indicates that a block claims a slot too far ahead of the
// local clock. The block is not known to be invalid; callers should retry
// verification once real time has caught up, rather than reject permanently.
type FutureSlotError struct {
	Slot        Slot
	CurrentSlot Slot
}

func (e FutureSlotError) Error() string {
	return fmt.Sprintf("block claims slot %d, but current slot is %d", e.Slot, e.CurrentSlot)
}

// IsFutureSlotError returns whether an error is FutureSlotError.
func IsFutureSlotError(err error) bool {
	var e FutureSlotError
	return errors.As(err, &e)
}
