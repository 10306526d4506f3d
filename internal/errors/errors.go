// internal/errors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason is the machine-readable cause of a rejected mutation.
type Reason string

const (
	ReasonMissingField Reason = "MissingField"
	ReasonInvalidInput Reason = "InvalidInput"
	ReasonConflict     Reason = "Conflict"
	ReasonNotFound     Reason = "NotFound"
)

func (r Reason) HTTPStatus() int {
	switch r {
	case ReasonMissingField, ReasonInvalidInput:
		return http.StatusBadRequest
	case ReasonConflict:
		return http.StatusConflict
	case ReasonNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Rejection is an expected business-rule violation. It travels as an error
// value and is translated verbatim into the response body.
type Rejection struct {
	Reason  Reason
	Message string
}

func (e *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Rejection) HTTPStatus() int {
	return e.Reason.HTTPStatus()
}

func MissingField(message string) *Rejection {
	return &Rejection{Reason: ReasonMissingField, Message: message}
}

func InvalidInput(message string) *Rejection {
	return &Rejection{Reason: ReasonInvalidInput, Message: message}
}

func Conflict(message string) *Rejection {
	return &Rejection{Reason: ReasonConflict, Message: message}
}

func NotFound(message string) *Rejection {
	return &Rejection{Reason: ReasonNotFound, Message: message}
}

// AsRejection unwraps err into a Rejection when it carries one.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// ErrDuplicate is returned by the store when an insert or update collides
// with an existing natural key.
var ErrDuplicate = errors.New("duplicate natural key")

// ErrCampaignNotFound is returned by the store when a campaign row vanished
// between lookup and write.
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}
