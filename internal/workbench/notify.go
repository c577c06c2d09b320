package workbench

import (
	"errors"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/instrument"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message IDs of user-facing notifications, resolved through i18n.
const (
	NotifyGenerated        = "notify.generated"
	NotifyGenerationFailed = "notify.generation_failed"
	NotifyMissingParams    = "notify.missing_params"
	NotifyInFlight         = "notify.in_flight"
	NotifyCreated          = "notify.created"
	NotifyAlreadyExists    = "notify.already_exists"
	NotifyEmpty            = "notify.empty"
	NotifyInvalidValue     = "notify.invalid_value"
)

// Notification is a transient message shown to the teacher.
type Notification struct {
	Level     Level  `json:"level"`
	MessageID string `json:"message_id"`
}

// NotificationFor maps the outcome of a generation to a notification.
// Transport and mapping failures look the same to the user.
func NotificationFor(err error) Notification {
	var (
		te *generate.TransportError
		me *generate.MappingError
		fe *instrument.FieldError
	)
	switch {
	case err == nil:
		return Notification{LevelSuccess, NotifyGenerated}
	case errors.Is(err, ErrMissingParams):
		return Notification{LevelError, NotifyMissingParams}
	case errors.Is(err, ErrGenerationInFlight):
		return Notification{LevelError, NotifyInFlight}
	case errors.Is(err, ErrSlotPopulated):
		return Notification{LevelError, NotifyAlreadyExists}
	case errors.Is(err, ErrSlotEmpty):
		return Notification{LevelError, NotifyEmpty}
	case errors.As(err, &fe):
		return Notification{LevelError, NotifyInvalidValue}
	case errors.As(err, &te), errors.As(err, &me):
		return Notification{LevelError, NotifyGenerationFailed}
	}
	return Notification{LevelError, NotifyGenerationFailed}
}
