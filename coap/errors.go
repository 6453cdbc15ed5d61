package coap

import (
	"errors"
	"fmt"
)

// Parse errors
var (
	ErrMessageTooShort             = errors.New("coap: message too short")
	ErrUnknownVersion              = errors.New("coap: unknown version")
	ErrInvalidTokenLength          = errors.New("coap: invalid token length")
	ErrInvalidOptionDelta          = errors.New("coap: invalid option delta")
	ErrInvalidOptionLength         = errors.New("coap: invalid option length")
	ErrEmptyMessageWithData        = errors.New("coap: empty message (code 0.00) contains data after the header")
	ErrPayloadMarkerWithoutPayload = errors.New("coap: payload marker without payload")
	ErrInvalidUTF8                 = errors.New("coap: option value is not valid UTF-8")
)

// Build errors. ErrPayloadMarkerWithoutPayload and ErrEmptyMessageWithData
// are also returned by the Builder when asked to write what Parse would
// reject.
var (
	ErrBufferTooSmall         = errors.New("coap: buffer too small")
	ErrTokenTooLong           = errors.New("coap: token too long")
	ErrOptionNumberOutOfOrder = errors.New("coap: option number out of order")
	ErrOptionValueTooLong     = errors.New("coap: option value too long")
	ErrBuilderState           = errors.New("coap: builder called out of order")
)

type UnknownVersionError struct {
	Version uint8
}

func (e UnknownVersionError) Error() string {
	return fmt.Sprintf("coap: unknown version %d", e.Version)
}

func (e UnknownVersionError) Is(target error) bool {
	return target == ErrUnknownVersion
}

type InvalidTokenLengthError struct {
	Length int
}

func (e InvalidTokenLengthError) Error() string {
	return fmt.Sprintf("coap: invalid token length (expected 0-8, got %d)", e.Length)
}

func (e InvalidTokenLengthError) Is(target error) bool {
	return target == ErrInvalidTokenLength
}

type TokenTooLongError struct {
	Length int
}

func (e TokenTooLongError) Error() string {
	return fmt.Sprintf("coap: token too long (expected <= 8, got %d)", e.Length)
}

func (e TokenTooLongError) Is(target error) bool {
	return target == ErrTokenTooLong
}
