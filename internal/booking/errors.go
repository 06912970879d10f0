package booking

import "errors"

// Validation failures raised by wizard transitions. None of them reach the
// backend; handlers show them to the user as they are.
var (
	ErrNoMovie             = errors.New("select a movie first")
	ErrWrongStep           = errors.New("this action is not available at the current step")
	ErrStaleWizard         = errors.New("this booking form has expired, please start again")
	ErrUnknownTime         = errors.New("select one of the listed showtimes")
	ErrDateOutOfRange      = errors.New("the date must be within the booking window")
	ErrTimeRequired        = errors.New("select a showtime before continuing")
	ErrScheduleIncomplete  = errors.New("select a showtime and a room")
	ErrNoSeats             = errors.New("select at least one seat")
	ErrSeatOccupied        = errors.New("this seat is already reserved")
	ErrSeatOutOfRange      = errors.New("this seat does not exist in the selected room")
	ErrAvailabilityUnknown = errors.New("seat availability could not be loaded, please try again")
	ErrInvalidEmail        = errors.New("enter a valid email address")
)
