package render

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/luma/minicoap/coap"
)

// MessageJSON renders a decoded message. The output can be fed back to
// BuildJSON to get the same datagram.
func MessageJSON(msg coap.Message) (out []byte, err error) {
	out = []byte(`{}`)

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}

		out, err = sjson.SetBytes(out, path, value)
	}

	set("version", msg.Version)
	set("type", msg.Type.String())
	set("code", msg.Code.String())

	if name, ok := msg.Code.MethodName(); ok {
		set("method", name)
	}

	set("message_id", msg.MessageID)
	set("token", hex.EncodeToString(msg.Token))

	if err == nil {
		out, err = sjson.SetRawBytes(out, "options", []byte(`[]`))
	}

	i := 0
	it := msg.Options.Iter()
	for opt, ok := it.Next(); ok; opt, ok = it.Next() {
		prefix := fmt.Sprintf("options.%d.", i)
		i++

		set(prefix+"number", uint16(opt.Number))
		set(prefix+"name", opt.Number.String())
		set(prefix+"hex", hex.EncodeToString(opt.Value))

		if v, ok := opt.Uint(); ok {
			set(prefix+"uint", v)
		}

		if s, textErr := opt.Text(); textErr == nil {
			set(prefix+"string", s)
		}

		if opt.Number == coap.ContentFormat || opt.Number == coap.Accept {
			if v, ok := opt.Uint(); ok && v <= 0xFFFF {
				set(prefix+"media_type", coap.MediaType(v).String())
			}
		}

		set(prefix+"critical", opt.IsCritical())
	}

	if msg.HasPayload() {
		if utf8.Valid(msg.Payload) {
			set("payload", string(msg.Payload))
		} else {
			set("payload_hex", hex.EncodeToString(msg.Payload))
		}
	}

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Pretty indents a JSON document.
func Pretty(doc []byte) []byte {
	return []byte(gjson.GetBytes(doc, "@pretty").Raw)
}
