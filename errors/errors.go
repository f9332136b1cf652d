package errors

import "errors"

// Static errors returned by the fleetctl engine. Call sites wrap these with
// fmt.Errorf("%w: ...") to attach the exact position, path or identifier
// needed to fix the source data.
var (
	// ErrInvalidTopology is returned when the global topology document is
	// structurally invalid (empty or duplicated names among siblings).
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrMissingBaseValues is returned when an application's mandatory base
	// `values.yaml` document is absent.
	ErrMissingBaseValues = errors.New("missing base values document")

	// ErrPatchNotFound is returned when a named patch exists nowhere in the
	// document tree for the given application.
	ErrPatchNotFound = errors.New("patch not found")

	// ErrPromotionGap is returned when a patch's frontier is not prefix-closed
	// relative to the promotion order.
	ErrPromotionGap = errors.New("gap detected in patch promotion sequence")

	// ErrTargetConflict is returned when the computed promotion target already
	// holds a copy of the patch.
	ErrTargetConflict = errors.New("promotion target already holds the patch")

	// ErrDependencyUnmet is returned when a patch precondition on another
	// application's resolved configuration does not hold.
	ErrDependencyUnmet = errors.New("patch dependency not satisfied")

	// ErrUnknownListMergeStrategy is returned when a patch declares a list
	// merge strategy other than `append` or `replace`.
	ErrUnknownListMergeStrategy = errors.New("unknown list merge strategy")

	// ErrLockTimeout is returned when the advisory promotion lock cannot be
	// acquired.
	ErrLockTimeout = errors.New("failed to acquire promotion lock")

	// ErrInvalidPatchMetadata is returned when a patch `metadata` block cannot
	// be decoded.
	ErrInvalidPatchMetadata = errors.New("invalid patch metadata")
)
