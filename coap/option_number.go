package coap

import (
	"fmt"
	"strings"
)

// OptionNumber identifies an option. Numbers not listed below are still
// valid and decode as themselves.
//
//	```
//	+-----+---+---+---+---+----------------+--------+--------+
//	| No. | C | U | N | R | Name           | Format | Length |
//	+-----+---+---+---+---+----------------+--------+--------+
//	|   1 | x |   |   | x | If-Match       | opaque | 0-8    |
//	|   3 | x | x | - |   | Uri-Host       | string | 1-255  |
//	|   4 |   |   |   | x | ETag           | opaque | 1-8    |
//	|   5 | x |   |   |   | If-None-Match  | empty  | 0      |
//	|   6 |   | x | - |   | Observe        | uint   | 0-3    |
//	|   7 | x | x | - |   | Uri-Port       | uint   | 0-2    |
//	|   8 |   |   |   | x | Location-Path  | string | 0-255  |
//	|  11 | x | x | - | x | Uri-Path       | string | 0-255  |
//	|  12 |   |   |   |   | Content-Format | uint   | 0-2    |
//	|  14 |   | x | - |   | Max-Age        | uint   | 0-4    |
//	|  15 | x | x | - | x | Uri-Query      | string | 0-255  |
//	|  17 | x |   |   |   | Accept         | uint   | 0-2    |
//	|  20 |   |   |   | x | Location-Query | string | 0-255  |
//	|  23 | x | x | - |   | Block2         | uint   | 0-3    |
//	|  27 | x | x | - |   | Block1         | uint   | 0-3    |
//	|  28 |   |   | x |   | Size2          | uint   | 0-4    |
//	|  35 | x | x | - |   | Proxy-Uri      | string | 1-1034 |
//	|  39 | x | x | - |   | Proxy-Scheme   | string | 1-255  |
//	|  60 |   |   | x |   | Size1          | uint   | 0-4    |
//	| 252 |   |   | x | x | Echo           | opaque | 1-40   |
//	| 292 |   |   |   | x | Request-Tag    | opaque | 0-8    |
//	+-----+---+---+---+---+----------------+--------+--------+
//	C=Critical, U=Unsafe, N=NoCacheKey, R=Repeatable
//	```
type OptionNumber uint16

const (
	IfMatch       OptionNumber = 1
	URIHost       OptionNumber = 3
	ETag          OptionNumber = 4
	IfNoneMatch   OptionNumber = 5
	Observe       OptionNumber = 6
	URIPort       OptionNumber = 7
	LocationPath  OptionNumber = 8
	URIPath       OptionNumber = 11
	ContentFormat OptionNumber = 12
	MaxAge        OptionNumber = 14
	URIQuery      OptionNumber = 15
	Accept        OptionNumber = 17
	LocationQuery OptionNumber = 20
	Block2        OptionNumber = 23
	Block1        OptionNumber = 27
	Size2         OptionNumber = 28
	ProxyURI      OptionNumber = 35
	ProxyScheme   OptionNumber = 39
	Size1         OptionNumber = 60
	Echo          OptionNumber = 252
	RequestTag    OptionNumber = 292
)

var optionNames = map[OptionNumber]string{
	IfMatch:       "If-Match",
	URIHost:       "Uri-Host",
	ETag:          "ETag",
	IfNoneMatch:   "If-None-Match",
	Observe:       "Observe",
	URIPort:       "Uri-Port",
	LocationPath:  "Location-Path",
	URIPath:       "Uri-Path",
	ContentFormat: "Content-Format",
	MaxAge:        "Max-Age",
	URIQuery:      "Uri-Query",
	Accept:        "Accept",
	LocationQuery: "Location-Query",
	Block2:        "Block2",
	Block1:        "Block1",
	Size2:         "Size2",
	ProxyURI:      "Proxy-Uri",
	ProxyScheme:   "Proxy-Scheme",
	Size1:         "Size1",
	Echo:          "Echo",
	RequestTag:    "Request-Tag",
}

// IsCritical reports whether an endpoint that does not understand the
// option must reject the message.
func (n OptionNumber) IsCritical() bool {
	return n&1 == 1
}

// IsUnsafe reports whether a proxy that does not understand the option must
// not forward it.
func (n OptionNumber) IsUnsafe() bool {
	return n&2 == 2
}

// IsNoCacheKey only has a meaning for options that are safe to forward.
func (n OptionNumber) IsNoCacheKey() bool {
	return n&0x1e == 0x1c
}

// IsKnown reports whether n is one of the registered options above.
func (n OptionNumber) IsKnown() bool {
	_, ok := optionNames[n]
	return ok
}

func (n OptionNumber) String() string {
	if name, ok := optionNames[n]; ok {
		return name
	}

	return fmt.Sprintf("Option(%d)", uint16(n))
}

// ParseOptionNumber looks up a registered option by name, ignoring case.
func ParseOptionNumber(name string) (OptionNumber, bool) {
	for n, known := range optionNames {
		if strings.EqualFold(known, name) {
			return n, true
		}
	}

	return 0, false
}

// MediaType identifies the media type of a payload, as carried in the
// Content-Format and Accept options.
type MediaType uint16

const (
	TextPlain      MediaType = 0
	AppLinkFormat  MediaType = 40
	AppXML         MediaType = 41
	AppOctetStream MediaType = 42
	AppExi         MediaType = 47
	AppJSON        MediaType = 50
	AppJSONPatch   MediaType = 51
	AppMergePatch  MediaType = 52
)

var mediaTypeNames = map[MediaType]string{
	TextPlain:      "text/plain;charset=utf-8",
	AppLinkFormat:  "application/link-format",
	AppXML:         "application/xml",
	AppOctetStream: "application/octet-stream",
	AppExi:         "application/exi",
	AppJSON:        "application/json",
	AppJSONPatch:   "application/json-patch+json",
	AppMergePatch:  "application/merge-patch+json",
}

func (m MediaType) String() string {
	if name, ok := mediaTypeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("MediaType(%d)", uint16(m))
}
