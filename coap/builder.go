package coap

import (
	"encoding/binary"
	"fmt"
)

type builderState uint8

const (
	needsBuffer builderState = iota
	needsHeader
	needsMessageID
	needsToken
	needsPayload
	complete
)

func (s builderState) String() string {
	switch s {
	case needsBuffer:
		return "NeedsBuffer"
	case needsHeader:
		return "NeedsHeader"
	case needsMessageID:
		return "NeedsMessageId"
	case needsToken:
		return "NeedsToken"
	case needsPayload:
		return "NeedsPayload"
	case complete:
		return "Complete"
	default:
		return fmt.Sprintf("builderState(%d)", uint8(s))
	}
}

// Builder writes a message into a caller supplied buffer. The steps must be
// called in wire order:
//
//	Reset → Header → MessageID → Token/NoToken → Option* → Payload/NoPayload → Build
//
// Calling a step out of order returns an error wrapping ErrBuilderState and
// writes nothing. A step that fails for any other reason leaves the builder
// in the state it was in, the fields already written stay written.
//
// The zero Builder needs a buffer. A Builder must not be shared between
// goroutines, and the buffer must not be touched until Build has returned.
type Builder struct {
	buf        []byte
	offset     int
	lastOption OptionNumber
	state      builderState
}

// NewBuilder returns a Builder writing into buf.
func NewBuilder(buf []byte) (*Builder, error) {
	b := &Builder{}
	if err := b.Reset(buf); err != nil {
		return nil, err
	}

	return b, nil
}

// Reset discards anything written so far and starts a new message in buf.
// buf must hold at least the 4 byte header.
func (b *Builder) Reset(buf []byte) error {
	if len(buf) < HeaderSize {
		return ErrBufferTooSmall
	}

	*b = Builder{buf: buf, state: needsHeader}
	return nil
}

// Header writes the version, message type and code.
func (b *Builder) Header(t MessageType, c Code) error {
	if err := b.expect(needsHeader, "Header"); err != nil {
		return err
	}

	// The token length nibble is filled in by Token
	b.buf[0] = Version1<<6 | byte(t&0b11)<<4
	b.buf[1] = byte(c)
	b.offset = 2
	b.state = needsMessageID

	return nil
}

// Request writes a header carrying a method code.
func (b *Builder) Request(t MessageType, method Code) error {
	return b.Header(t, method)
}

// Response writes a header carrying a response code.
func (b *Builder) Response(t MessageType, status Code) error {
	return b.Header(t, status)
}

// Empty writes the header of a 0.00 message, which carries no options and
// no payload.
func (b *Builder) Empty(t MessageType) error {
	return b.Header(t, Empty)
}

// Ping writes the header of a CoAP ping, an empty confirmable message.
func (b *Builder) Ping() error {
	return b.Header(Confirmable, Empty)
}

func (b *Builder) MessageID(id uint16) error {
	if err := b.expect(needsMessageID, "MessageID"); err != nil {
		return err
	}

	binary.BigEndian.PutUint16(b.buf[b.offset:], id)
	b.offset += 2
	b.state = needsToken

	return nil
}

// Token writes token and records its length in the header.
func (b *Builder) Token(token []byte) error {
	if err := b.expect(needsToken, "Token"); err != nil {
		return err
	}

	if len(token) > MaxTokenLength {
		return TokenTooLongError{Length: len(token)}
	}

	if b.offset+len(token) > len(b.buf) {
		return ErrBufferTooSmall
	}

	b.buf[0] |= byte(len(token)) & 0x0F
	b.offset += copy(b.buf[b.offset:], token)
	b.state = needsPayload

	return nil
}

// NoToken moves on without a token, the length nibble is already 0.
func (b *Builder) NoToken() error {
	if err := b.expect(needsToken, "NoToken"); err != nil {
		return err
	}

	b.state = needsPayload
	return nil
}

// Option appends an option. Options must be added in ascending number
// order, the same number may be added more than once.
func (b *Builder) Option(n OptionNumber, value []byte) error {
	if err := b.optionHeader("Option", n, len(value)); err != nil {
		return err
	}

	b.offset += copy(b.buf[b.offset:], value)
	return nil
}

// OptionString appends an option holding the bytes of s.
func (b *Builder) OptionString(n OptionNumber, s string) error {
	if err := b.optionHeader("OptionString", n, len(s)); err != nil {
		return err
	}

	b.offset += copy(b.buf[b.offset:], s)
	return nil
}

// OptionUint appends an option holding v in as few bytes as possible. Zero
// is written as an empty value.
func (b *Builder) OptionUint(n OptionNumber, v uint64) error {
	scratch, start := minimalUint(v)

	if err := b.optionHeader("OptionUint", n, len(scratch)-start); err != nil {
		return err
	}

	b.offset += copy(b.buf[b.offset:], scratch[start:])
	return nil
}

// optionHeader checks there is room for the whole option and writes
// everything but the value.
func (b *Builder) optionHeader(op string, n OptionNumber, valueLen int) error {
	if err := b.expect(needsPayload, op); err != nil {
		return err
	}

	if b.buf[1] == byte(Empty) {
		return ErrEmptyMessageWithData
	}

	if n < b.lastOption {
		return fmt.Errorf("option %d after %d: %w", n, b.lastOption, ErrOptionNumberOutOfOrder)
	}

	if valueLen > maxExtended {
		return fmt.Errorf("%d bytes for option %d: %w", valueLen, n, ErrOptionValueTooLong)
	}

	delta, deltaExt, deltaLen := encodeExtended(uint32(n - b.lastOption))
	length, lengthExt, lengthLen := encodeExtended(uint32(valueLen))

	if b.offset+1+deltaLen+lengthLen+valueLen > len(b.buf) {
		return ErrBufferTooSmall
	}

	b.buf[b.offset] = delta<<4 | length
	b.offset++

	b.offset += copy(b.buf[b.offset:], deltaExt[:deltaLen])
	b.offset += copy(b.buf[b.offset:], lengthExt[:lengthLen])

	b.lastOption = n

	return nil
}

// Payload writes the payload marker followed by payload. To send no payload
// use NoPayload, an empty payload is an error.
func (b *Builder) Payload(payload []byte) error {
	if err := b.expect(needsPayload, "Payload"); err != nil {
		return err
	}

	if len(payload) == 0 {
		return ErrPayloadMarkerWithoutPayload
	}

	if b.buf[1] == byte(Empty) {
		return ErrEmptyMessageWithData
	}

	if b.offset+1+len(payload) > len(b.buf) {
		return ErrBufferTooSmall
	}

	b.buf[b.offset] = PayloadMarker
	b.offset++
	b.offset += copy(b.buf[b.offset:], payload)
	b.state = complete

	return nil
}

func (b *Builder) NoPayload() error {
	if err := b.expect(needsPayload, "NoPayload"); err != nil {
		return err
	}

	b.state = complete
	return nil
}

// Build returns the finished message. It aliases the buffer given to Reset.
func (b *Builder) Build() ([]byte, error) {
	if err := b.expect(complete, "Build"); err != nil {
		return nil, err
	}

	return b.buf[:b.offset:b.offset], nil
}

// Len is the number of bytes written so far.
func (b *Builder) Len() int {
	return b.offset
}

func (b *Builder) expect(state builderState, op string) error {
	if b.state != state {
		return fmt.Errorf("%w: %s needs %s, builder is at %s", ErrBuilderState, op, state, b.state)
	}

	return nil
}
