package coap

import "fmt"

// Version1 is the only message format version there is.
const Version1 uint8 = 0b01

type MessageType uint8

const (
	Confirmable     MessageType = 0
	NonConfirmable  MessageType = 1
	Acknowledgement MessageType = 2
	Reset           MessageType = 3
)

func (t MessageType) String() string {
	switch t {
	case Confirmable:
		return "CON"
	case NonConfirmable:
		return "NON"
	case Acknowledgement:
		return "ACK"
	case Reset:
		return "RST"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// Code is a method or response code, a 3 bit class and a 5 bit detail.
type Code uint8

// NewCode packs class and detail into a Code. It returns an error if either
// does not fit its field.
func NewCode(class, detail uint8) (Code, error) {
	if class > 0b111 {
		return 0, fmt.Errorf("coap: code class %d out of range 0-7", class)
	}

	if detail > 0b11111 {
		return 0, fmt.Errorf("coap: code detail %d out of range 0-31", detail)
	}

	return Code(class<<5 | detail), nil
}

const Empty Code = 0

// Request codes
const (
	GET    Code = 0<<5 | 1
	POST   Code = 0<<5 | 2
	PUT    Code = 0<<5 | 3
	DELETE Code = 0<<5 | 4
	FETCH  Code = 0<<5 | 5
	PATCH  Code = 0<<5 | 6
	IPATCH Code = 0<<5 | 7
)

// Response codes
const (
	Created                  Code = 2<<5 | 1
	Deleted                  Code = 2<<5 | 2
	Valid                    Code = 2<<5 | 3
	Changed                  Code = 2<<5 | 4
	Content                  Code = 2<<5 | 5
	Continue                 Code = 2<<5 | 31
	BadRequest               Code = 4<<5 | 0
	Unauthorized             Code = 4<<5 | 1
	BadOption                Code = 4<<5 | 2
	Forbidden                Code = 4<<5 | 3
	NotFound                 Code = 4<<5 | 4
	MethodNotAllowed         Code = 4<<5 | 5
	NotAcceptable            Code = 4<<5 | 6
	RequestEntityIncomplete  Code = 4<<5 | 8
	Conflict                 Code = 4<<5 | 9
	PreconditionFailed       Code = 4<<5 | 12
	RequestEntityTooLarge    Code = 4<<5 | 13
	UnsupportedContentFormat Code = 4<<5 | 15
	UnprocessableEntity      Code = 4<<5 | 22
	InternalServerError      Code = 5<<5 | 0
	NotImplemented           Code = 5<<5 | 1
	BadGateway               Code = 5<<5 | 2
	ServiceUnavailable       Code = 5<<5 | 3
	GatewayTimeout           Code = 5<<5 | 4
	ProxyingNotSupported     Code = 5<<5 | 5
)

var methodNames = map[Code]string{
	GET:    "GET",
	POST:   "POST",
	PUT:    "PUT",
	DELETE: "DELETE",
	FETCH:  "FETCH",
	PATCH:  "PATCH",
	IPATCH: "iPATCH",
}

func (c Code) Class() uint8 {
	return uint8(c) >> 5
}

func (c Code) Detail() uint8 {
	return uint8(c) & 0x1F
}

// IsRequest is true for the method codes, 0.01 to 0.31.
func (c Code) IsRequest() bool {
	return c.Class() == 0 && c.Detail() != 0
}

// IsResponse is true for success, client error and server error codes.
func (c Code) IsResponse() bool {
	switch c.Class() {
	case 2, 4, 5:
		return true
	default:
		return false
	}
}

func (c Code) IsEmpty() bool {
	return c == Empty
}

// String returns the dotted c.dd form, e.g. "2.05".
func (c Code) String() string {
	return fmt.Sprintf("%d.%02d", c.Class(), c.Detail())
}

// MethodName returns the method name for request codes, e.g. "GET".
func (c Code) MethodName() (string, bool) {
	name, ok := methodNames[c]
	return name, ok
}
