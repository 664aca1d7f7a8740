package nostr

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidEvent wraps every schema failure.
	ErrInvalidEvent = errors.New("nostr: invalid event")

	// ErrUnexpectedKind reports an event of the wrong kind for a helper.
	ErrUnexpectedKind = errors.New("nostr: unexpected event kind")

	// ErrMissingThreadTag reports a threaded response without a usable e tag.
	ErrMissingThreadTag = errors.New("nostr: threaded response needs an e tag with 2 to 4 elements")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// lowerhex=N accepts exactly N lowercase hex characters.
		_ = v.RegisterValidation("lowerhex", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			s := fl.Field().String()
			if len(s) != n {
				return false
			}
			for i := 0; i < len(s); i++ {
				c := s[i]
				if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
					return false
				}
			}
			return true
		})
		validate = v
	})
	return validate
}

// Validate checks every field of a signed event. It does not verify the
// signature; use Verify for that.
func Validate(e *Event) error {
	return schemaError(schema().Struct(e))
}

// ValidateUnsigned checks an event that has not been signed yet, ignoring
// the id and signature fields.
func ValidateUnsigned(e *Event) error {
	return schemaError(schema().StructExcept(e, "ID", "Sig"))
}

// ValidateChatMessage checks a signed kind 11 chat message.
func ValidateChatMessage(e *Event) error {
	if err := Validate(e); err != nil {
		return err
	}
	if e.Kind != KindChatMessage {
		return fmt.Errorf("%w: want %d, got %d", ErrUnexpectedKind, KindChatMessage, e.Kind)
	}
	return nil
}

// ValidateThreadedResponse checks a signed kind 1111 response. It must carry
// an e tag naming the event it replies to.
func ValidateThreadedResponse(e *Event) error {
	if err := Validate(e); err != nil {
		return err
	}
	if e.Kind != KindThreadedResponse {
		return fmt.Errorf("%w: want %d, got %d", ErrUnexpectedKind, KindThreadedResponse, e.Kind)
	}
	for _, t := range e.Tags {
		if len(t) >= 2 && len(t) <= 4 && t[0] == "e" {
			return nil
		}
	}
	return ErrMissingThreadTag
}

func schemaError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: field %s failed %q", ErrInvalidEvent, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
}
