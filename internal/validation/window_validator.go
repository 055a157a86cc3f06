package validation

// MaxSessionMillis is the 24-hour ceiling on a single tracked session.
const MaxSessionMillis = int64(24 * 3600000)

// WindowValidator provides validation for window lifecycle requests
type WindowValidator struct {
	validator *Validator
}

// NewWindowValidator creates a new window validator
func NewWindowValidator() *WindowValidator {
	return &WindowValidator{
		validator: NewValidator(),
	}
}

// ValidateStart validates the start-session request fields
func (wv *WindowValidator) ValidateStart(projectID, taskID, hwid string, timezoneOffset int64, shiftID string) error {
	validationError := NewValidationError()

	if !wv.validator.IsNonEmptyString(projectID) {
		validationError.AddRequiredError("projectId")
	} else if !wv.validator.IsValidID(projectID) {
		validationError.AddInvalidValueError("projectId", projectID, "must be a valid identifier")
	}

	if !wv.validator.IsNonEmptyString(taskID) {
		validationError.AddRequiredError("taskId")
	} else if !wv.validator.IsValidID(taskID) {
		validationError.AddInvalidValueError("taskId", taskID, "must be a valid identifier")
	}

	if !wv.validator.IsNonEmptyString(hwid) {
		validationError.AddRequiredError("hwid")
	}

	if !wv.validator.IsValidTimezoneOffset(timezoneOffset) {
		validationError.AddInvalidRangeError("timezoneOffset", timezoneOffset, "must be within UTC offset bounds")
	}

	if shiftID != "" && !wv.validator.IsValidID(shiftID) {
		validationError.AddInvalidValueError("shiftId", shiftID, "must be a valid identifier")
	}

	return validationError.ErrorOrNil()
}

// ValidateStop validates the stop-session request against the window's
// recorded start. The duration bounds are rejected, never clamped.
func (wv *WindowValidator) ValidateStop(startMillis, endMillis int64) error {
	validationError := NewValidationError()

	if !wv.validator.IsValidMillis(endMillis) {
		validationError.AddInvalidValueError("endTime", endMillis, "must be a positive millisecond timestamp")
		return validationError
	}

	if endMillis <= startMillis {
		validationError.AddInvalidRangeError("endTime", endMillis, "end time must be after start time")
	} else if endMillis-startMillis > MaxSessionMillis {
		validationError.AddInvalidRangeError("endTime", endMillis, "session duration must not exceed 24 hours")
	}

	return validationError.ErrorOrNil()
}

// ValidateWindowID validates a window identifier
func (wv *WindowValidator) ValidateWindowID(id string) error {
	if !wv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("windowId", id, "must be a valid identifier")
		return validationError
	}
	return nil
}
