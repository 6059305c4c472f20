package weather

import "errors"

var (
	// ErrCityNotFound is reported when the gateway answers with a non-2xx status.
	ErrCityNotFound = errors.New("City not found")
	// ErrInvalidPayload is reported when a 2xx JSON body lacks the required blocks.
	ErrInvalidPayload = errors.New("Invalid weather data format")
)

// FallbackMessage is shown when a transport failure carries no message.
const FallbackMessage = "Failed to fetch weather"

// FailureMessage converts any lookup error into the text shown to the user.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return FallbackMessage
	case errors.Is(err, ErrCityNotFound):
		return ErrCityNotFound.Error()
	case errors.Is(err, ErrInvalidPayload):
		return ErrInvalidPayload.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
