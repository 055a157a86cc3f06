package validation

// ScreenshotValidator provides validation for screenshot upload requests
type ScreenshotValidator struct {
	validator *Validator
}

// NewScreenshotValidator creates a new screenshot validator
func NewScreenshotValidator() *ScreenshotValidator {
	return &ScreenshotValidator{
		validator: NewValidator(),
	}
}

// ValidateUpload validates the screenshot upload request fields
func (sv *ScreenshotValidator) ValidateUpload(windowID string, takenAt int64, timezoneOffset int64) error {
	validationError := NewValidationError()

	if !sv.validator.IsNonEmptyString(windowID) {
		validationError.AddRequiredError("windowId")
	} else if !sv.validator.IsValidID(windowID) {
		validationError.AddInvalidValueError("windowId", windowID, "must be a valid identifier")
	}

	if !sv.validator.IsValidMillis(takenAt) {
		validationError.AddInvalidValueError("timestamp", takenAt, "must be a positive millisecond timestamp")
	}

	if !sv.validator.IsValidTimezoneOffset(timezoneOffset) {
		validationError.AddInvalidRangeError("timezoneOffset", timezoneOffset, "must be within UTC offset bounds")
	}

	return validationError.ErrorOrNil()
}
