package errs

// Sentinels shared by the command and query sides. Messages must stay
// unique: Is compares marks by message and type.
var (
	// Request validation
	ErrMissingParameter  = New("missing required parameter")
	ErrInvalidDateFormat = New("invalid date format")
	ErrInvalidTimeSlot   = New("invalid time slot label")
	ErrInvalidStatus     = New("invalid booking status")
	ErrInvalidSlotInput  = New("invalid parking slot input")
	ErrInvalidSeedCount  = New("seed count must be positive")
	ErrInvalidUserInput  = New("invalid user input")

	// Parking slots
	ErrSlotNotFound        = New("parking slot not found")
	ErrDuplicateSlotNumber = New("parking slot number already exists")
	ErrSlotUnavailable     = New("parking slot is not available")

	// Bookings
	ErrBookingNotFound   = New("booking not found")
	ErrBookingConflict   = New("booking conflict")
	ErrInvalidTransition = New("booking status transition not allowed")
	ErrBookingForbidden  = New("booking belongs to another user")

	// Users and authentication
	ErrUserNotFound       = New("user not found")
	ErrUserInactive       = New("user inactive")
	ErrDuplicateUsername  = New("username already exists")
	ErrInvalidCredentials = New("invalid credentials")
	ErrTokenGeneration    = New("token generation failed")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
