package coap

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Message is a decoded view of a datagram. Token, option values and Payload
// are sub-slices of the buffer passed to Parse, nothing is copied.
type Message struct {
	Version   uint8
	Type      MessageType
	Code      Code
	MessageID uint16
	Token     []byte
	Options   Options

	// Payload is nil when the message has no payload marker. When there is
	// a marker it is never empty.
	Payload []byte
}

// Parse validates buf and decodes it as a single CoAP message.
//
// The returned Message, and every slice reachable from it, aliases buf. buf
// must not be modified while the Message is in use.
func Parse(buf []byte) (msg Message, err error) {
	if len(buf) < HeaderSize {
		return Message{}, ErrMessageTooShort
	}

	version := buf[0] >> 6
	if version != Version1 {
		return Message{}, UnknownVersionError{Version: version}
	}

	tokenLen := int(buf[0] & 0x0F)
	if tokenLen > MaxTokenLength {
		return Message{}, InvalidTokenLengthError{Length: tokenLen}
	}

	msg = Message{
		Version:   version,
		Type:      MessageType(buf[0] >> 4 & 0b11),
		Code:      Code(buf[1]),
		MessageID: binary.BigEndian.Uint16(buf[2:4]),
	}

	offset := HeaderSize + tokenLen
	if len(buf) < offset {
		return Message{}, ErrMessageTooShort
	}

	msg.Token = buf[HeaderSize:offset:offset]

	// An empty message is the header and token, nothing else
	if msg.Code == Empty && len(buf) > offset {
		return Message{}, ErrEmptyMessageWithData
	}

	optionsEnd, payloadStart, err := scanOptions(buf, offset)
	if err != nil {
		return Message{}, err
	}

	msg.Options = Options{data: buf[offset:optionsEnd:optionsEnd]}

	if payloadStart >= 0 {
		if payloadStart >= len(buf) {
			return Message{}, ErrPayloadMarkerWithoutPayload
		}

		msg.Payload = buf[payloadStart:]
	}

	return msg, nil
}

// scanOptions validates the options starting at offset. It returns the end
// of the options region and the start of the payload, or -1 if there is no
// payload marker.
func scanOptions(buf []byte, offset int) (end int, payloadStart int, err error) {
	var number uint32

	for offset < len(buf) {
		header := buf[offset]
		if header == PayloadMarker {
			return offset, offset + 1, nil
		}

		delta, length := header>>4, header&0x0F

		if delta == nibbleReserved {
			return 0, 0, ErrInvalidOptionDelta
		}

		if length == nibbleReserved {
			return 0, 0, ErrInvalidOptionLength
		}

		offset++

		if offset+extendedLen(delta)+extendedLen(length) > len(buf) {
			return 0, 0, ErrMessageTooShort
		}

		d, n, _ := decodeExtended(delta, buf[offset:])
		offset += n

		l, n, _ := decodeExtended(length, buf[offset:])
		offset += n

		number += d
		if number > 0xFFFF {
			return 0, 0, fmt.Errorf("option number %d does not fit 16 bits: %w", number, ErrInvalidOptionDelta)
		}

		if uint32(len(buf)-offset) < l {
			return 0, 0, ErrMessageTooShort
		}

		offset += int(l)
	}

	return offset, -1, nil
}

func (m Message) IsRequest() bool {
	return m.Code.IsRequest()
}

func (m Message) IsResponse() bool {
	return m.Code.IsResponse()
}

func (m Message) IsEmpty() bool {
	return m.Code.IsEmpty()
}

func (m Message) HasPayload() bool {
	return m.Payload != nil
}

// Options is the raw options region of a message. It is decoded on demand,
// each call to Iter starts again from the first option.
type Options struct {
	data []byte
}

// Raw returns the options region as it appeared on the wire.
func (o Options) Raw() []byte {
	return o.data
}

func (o Options) Iter() OptionIterator {
	return OptionIterator{data: o.data}
}

// Find returns the first option numbered n.
func (o Options) Find(n OptionNumber) (Option, bool) {
	it := o.Iter()
	for opt, ok := it.Next(); ok; opt, ok = it.Next() {
		if opt.Number == n {
			return opt, true
		}

		if opt.Number > n {
			break
		}
	}

	return Option{}, false
}

// Len counts the options.
func (o Options) Len() (count int) {
	it := o.Iter()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		count++
	}

	return count
}

// OptionIterator walks an options region one option at a time. It checks
// every option as it goes, once it finds the end of the data or anything
// malformed it stops for good.
type OptionIterator struct {
	data   []byte
	offset int
	number uint16
	done   bool
}

// Next returns the next option, or false once there are no more.
func (it *OptionIterator) Next() (Option, bool) {
	if it.done || it.offset >= len(it.data) {
		it.done = true
		return Option{}, false
	}

	header := it.data[it.offset]
	rest := it.data[it.offset+1:]

	delta, deltaExt, ok := decodeExtended(header>>4, rest)
	if !ok {
		it.done = true
		return Option{}, false
	}

	length, lengthExt, ok := decodeExtended(header&0x0F, rest[deltaExt:])
	if !ok {
		it.done = true
		return Option{}, false
	}

	number := uint32(it.number) + delta
	if number > 0xFFFF {
		it.done = true
		return Option{}, false
	}

	start := it.offset + 1 + deltaExt + lengthExt
	if uint32(len(it.data)-start) < length {
		it.done = true
		return Option{}, false
	}

	end := start + int(length)

	it.offset = end
	it.number = uint16(number)

	return Option{
		Number: OptionNumber(number),
		Value:  it.data[start:end:end],
	}, true
}

// Option is a single decoded option. Value aliases the parsed buffer.
type Option struct {
	Number OptionNumber
	Value  []byte
}

// Uint decodes Value as a big-endian unsigned integer. A zero length value
// is 0. Values longer than 8 bytes are not integers.
func (o Option) Uint() (uint64, bool) {
	return decodeUint(o.Value)
}

// Text returns Value as a string, or an error if it is not valid UTF-8.
// The string is a copy, TextBytes checks the same thing without one.
func (o Option) Text() (string, error) {
	b, err := o.TextBytes()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// TextBytes returns Value itself once it is known to be valid UTF-8.
func (o Option) TextBytes() ([]byte, error) {
	if !utf8.Valid(o.Value) {
		return nil, fmt.Errorf("%s: %w", o.Number, ErrInvalidUTF8)
	}

	return o.Value, nil
}

func (o Option) IsCritical() bool {
	return o.Number.IsCritical()
}

func (o Option) IsUnsafe() bool {
	return o.Number.IsUnsafe()
}

func (o Option) IsNoCacheKey() bool {
	return o.Number.IsNoCacheKey()
}
