package court

import "errors"

var (
	ErrCourtNotFound        = errors.New("court not found")
	ErrCourtTypeNotFound    = errors.New("court type not found")
	ErrBuildingNotFound     = errors.New("building not found")
	ErrMainBuildingNotFound = errors.New("main building not found")
	ErrContactNotFound      = errors.New("contact not found")

	ErrCourtAlreadyExists   = errors.New("court already exists")
	ErrSubCodeAlreadyExists = errors.New("building sub code already exists")
	ErrMainBuildingExists   = errors.New("court already has a main building")
	ErrConflict             = errors.New("data integrity conflict")

	ErrInvalidContactType = errors.New("invalid contact type")
	ErrInvalidSort        = errors.New("invalid sort property")

	ErrNotificationFailed = errors.New("notification failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourtNotFound) ||
		errors.Is(err, ErrCourtTypeNotFound) ||
		errors.Is(err, ErrBuildingNotFound) ||
		errors.Is(err, ErrMainBuildingNotFound) ||
		errors.Is(err, ErrContactNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrCourtAlreadyExists) ||
		errors.Is(err, ErrSubCodeAlreadyExists) ||
		errors.Is(err, ErrMainBuildingExists) ||
		errors.Is(err, ErrConflict)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidContactType) || errors.Is(err, ErrInvalidSort)
}
