package failure

import (
	"errors"
	"net/http"
)

// Reason identifies the kind of a failure so callers can render a specific message.
type Reason string

const (
	ReasonMissingRequester    Reason = "missing_requester"
	ReasonNoEquipmentSelected Reason = "no_equipment_selected"
	ReasonUnknownEquipment    Reason = "unknown_equipment"
	ReasonInvalidInterval     Reason = "invalid_interval"
	ReasonConflict            Reason = "conflict"
	ReasonNotFound            Reason = "not_found"
	ReasonStorageFailure      Reason = "storage_failure"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Reason  Reason   `json:"reason,omitempty"`
	Items   []string `json:"items,omitempty"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Reason:  ReasonNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations, carrying the colliding items.
func Conflict(message string, items ...string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  ReasonConflict,
		Items:   items,
	}
}

// Rejected returns a new bad request Failure tagged with a business rule reason.
func Rejected(reason Reason, message string, items ...string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: message,
		Reason:  reason,
		Items:   items,
	}
}

// StorageFailure marks an error raised by the store. The original error stays reachable through errors.Is/As.
func StorageFailure(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Reason:  ReasonStorageFailure,
		cause:   err,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of an error interface, empty when it carries none.
func GetReason(err error) Reason {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// IsRejection reports whether err is a business rule rejection rather than a storage or internal failure.
func IsRejection(err error) bool {
	switch GetReason(err) {
	case ReasonMissingRequester, ReasonNoEquipmentSelected, ReasonUnknownEquipment, ReasonInvalidInterval, ReasonConflict:
		return true
	default:
		return false
	}
}
