package domain

import "errors"

var (
	// ErrPermissionDenied means the acting user's role lacks the
	// capability required by the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidStateTransition means the operation was attempted from a
	// lifecycle state that forbids it (for example holding a plot that is
	// not available).
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrBookingConflict means a plot already carries an open booking.
	ErrBookingConflict = errors.New("plot already has an open booking")

	// ErrApprovalRequired means a discount above the settings threshold
	// was requested without an approver.
	ErrApprovalRequired = errors.New("discount approval required")

	ErrPlotNotFound     = errors.New("plot not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrSettingsNotFound = errors.New("settings not found")
)

// IsNotFound reports whether err is one of the missing-record sentinels.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrPlotNotFound, ErrLeadNotFound, ErrBookingNotFound,
		ErrProjectNotFound, ErrUserNotFound, ErrDocumentNotFound,
		ErrSettingsNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
