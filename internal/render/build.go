package render

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/luma/minicoap/coap"
)

var ErrInvalidDescription = errors.New("render: invalid message description")

var methods = []coap.Code{
	coap.GET,
	coap.POST,
	coap.PUT,
	coap.DELETE,
	coap.FETCH,
	coap.PATCH,
	coap.IPATCH,
}

var messageTypes = []coap.MessageType{
	coap.Confirmable,
	coap.NonConfirmable,
	coap.Acknowledgement,
	coap.Reset,
}

type option struct {
	number coap.OptionNumber
	value  gjson.Result
}

// BuildJSON builds the message described by desc into buf and returns the
// datagram, which aliases buf. A description looks like
//
//	{
//	  "type": "CON",
//	  "code": "GET",
//	  "message_id": 4660,
//	  "token": "cafe",
//	  "options": [
//	    {"name": "Uri-Path", "string": "sensors"},
//	    {"number": 12, "uint": 50}
//	  ],
//	  "payload": "hello"
//	}
//
// type defaults to CON and code to GET. code is a method name, a dotted
// "c.dd" code or a number. Each option has a name or a number and one of
// hex, uint or string for its value. Options are written in ascending order,
// repeated options keep the order they were given in. The payload is a
// string, or payload_hex for binary data.
func BuildJSON(desc []byte, buf []byte) ([]byte, error) {
	if !gjson.ValidBytes(desc) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDescription)
	}

	doc := gjson.ParseBytes(desc)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidDescription)
	}

	messageType, err := parseType(doc.Get("type"))
	if err != nil {
		return nil, err
	}

	code, err := parseCode(doc.Get("code"))
	if err != nil {
		return nil, err
	}

	messageID, err := parseMessageID(doc.Get("message_id"))
	if err != nil {
		return nil, err
	}

	token, err := parseHex("token", doc.Get("token"))
	if err != nil {
		return nil, err
	}

	options, err := parseOptions(doc.Get("options"))
	if err != nil {
		return nil, err
	}

	payload, err := parsePayload(doc)
	if err != nil {
		return nil, err
	}

	b, err := coap.NewBuilder(buf)
	if err != nil {
		return nil, err
	}

	if err := b.Header(messageType, code); err != nil {
		return nil, err
	}

	if err := b.MessageID(messageID); err != nil {
		return nil, err
	}

	if err := b.Token(token); err != nil {
		return nil, err
	}

	for _, opt := range options {
		if err := writeOption(b, opt); err != nil {
			return nil, err
		}
	}

	if len(payload) > 0 {
		err = b.Payload(payload)
	} else {
		err = b.NoPayload()
	}

	if err != nil {
		return nil, err
	}

	return b.Build()
}

func parseType(v gjson.Result) (coap.MessageType, error) {
	switch v.Type {
	case gjson.Null:
		return coap.Confirmable, nil

	case gjson.Number:
		if n := v.Int(); isInteger(v) && n >= 0 && n <= 3 {
			return coap.MessageType(n), nil
		}

	case gjson.String:
		for _, t := range messageTypes {
			if strings.EqualFold(t.String(), v.Str) {
				return t, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unknown type %s", ErrInvalidDescription, v.Raw)
}

func parseCode(v gjson.Result) (coap.Code, error) {
	switch v.Type {
	case gjson.Null:
		return coap.GET, nil

	case gjson.Number:
		if n := v.Int(); isInteger(v) && n >= 0 && n <= 0xFF {
			return coap.Code(n), nil
		}

	case gjson.String:
		if class, detail, ok := strings.Cut(v.Str, "."); ok {
			c, err := strconv.ParseUint(class, 10, 8)
			if err != nil {
				break
			}

			d, err := strconv.ParseUint(detail, 10, 8)
			if err != nil {
				break
			}

			code, err := coap.NewCode(uint8(c), uint8(d))
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
			}

			return code, nil
		}

		if strings.EqualFold(v.Str, "empty") {
			return coap.Empty, nil
		}

		for _, method := range methods {
			if name, _ := method.MethodName(); strings.EqualFold(name, v.Str) {
				return method, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unknown code %s", ErrInvalidDescription, v.Raw)
}

func parseMessageID(v gjson.Result) (uint16, error) {
	switch v.Type {
	case gjson.Null:
		return 0, nil

	case gjson.Number:
		if n := v.Int(); isInteger(v) && n >= 0 && n <= 0xFFFF {
			return uint16(n), nil
		}
	}

	return 0, fmt.Errorf("%w: message_id %s is not a 16 bit number", ErrInvalidDescription, v.Raw)
}

// isInteger reports whether v is a JSON number written without a fraction
// or exponent. Int and Uint would silently truncate anything else.
func isInteger(v gjson.Result) bool {
	return v.Type == gjson.Number && !strings.ContainsAny(v.Raw, ".eE")
}

func parseHex(field string, v gjson.Result) ([]byte, error) {
	switch v.Type {
	case gjson.Null:
		return nil, nil

	case gjson.String:
		b, err := hex.DecodeString(v.Str)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDescription, field, err)
		}

		return b, nil
	}

	return nil, fmt.Errorf("%w: %s must be a hex string", ErrInvalidDescription, field)
}

func parseOptions(v gjson.Result) ([]option, error) {
	if !v.Exists() {
		return nil, nil
	}

	if !v.IsArray() {
		return nil, fmt.Errorf("%w: options must be an array", ErrInvalidDescription)
	}

	var options []option
	var err error

	v.ForEach(func(_, item gjson.Result) bool {
		var number coap.OptionNumber
		number, err = parseOptionNumber(item)
		if err != nil {
			return false
		}

		options = append(options, option{number: number, value: item})
		return true
	})

	if err != nil {
		return nil, err
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].number < options[j].number
	})

	return options, nil
}

func parseOptionNumber(item gjson.Result) (coap.OptionNumber, error) {
	if number := item.Get("number"); number.Exists() {
		n := number.Int()
		if !isInteger(number) || n < 0 || n > 0xFFFF {
			return 0, fmt.Errorf("%w: option number %s", ErrInvalidDescription, number.Raw)
		}

		return coap.OptionNumber(n), nil
	}

	name := item.Get("name").String()
	if n, ok := coap.ParseOptionNumber(name); ok {
		return n, nil
	}

	return 0, fmt.Errorf("%w: unknown option %q", ErrInvalidDescription, name)
}

func writeOption(b *coap.Builder, opt option) error {
	if v := opt.value.Get("hex"); v.Exists() {
		value, err := parseHex(opt.number.String(), v)
		if err != nil {
			return err
		}

		return b.Option(opt.number, value)
	}

	if v := opt.value.Get("uint"); v.Exists() {
		if !isInteger(v) || v.Num < 0 {
			return fmt.Errorf("%w: %s: uint %s", ErrInvalidDescription, opt.number, v.Raw)
		}

		// Num loses precision past 2^53, Uint reads the raw digits
		return b.OptionUint(opt.number, v.Uint())
	}

	if v := opt.value.Get("string"); v.Exists() {
		return b.OptionString(opt.number, v.String())
	}

	return b.Option(opt.number, nil)
}

func parsePayload(doc gjson.Result) ([]byte, error) {
	if v := doc.Get("payload_hex"); v.Exists() {
		return parseHex("payload_hex", v)
	}

	if v := doc.Get("payload"); v.Exists() {
		if v.Type != gjson.String {
			return nil, fmt.Errorf("%w: payload must be a string", ErrInvalidDescription)
		}

		return []byte(v.Str), nil
	}

	return nil, nil
}
