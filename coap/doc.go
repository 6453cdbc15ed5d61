package coap

// This package implements parsing and building of CoAP messages
// (RFC 7252) without copying or allocating.
//
// It aims to be
//
// - safe on hostile input, every malformed datagram maps to an error
// - zero-copy, decoded values are sub-slices of the input
// - allocation free, all capacity is caller supplied
//
// It does no I/O. Retransmission, deduplication, exchanges and block-wise
// reassembly belong to whatever sits on top of it.
//
// === Wire format
//
//   ```
//    0                   1                   2                   3
//    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//   |Ver| T |  TKL  |      Code     |          Message ID           |
//   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//   |   Token (if any, TKL bytes) ...
//   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//   |   Options (if any) ...
//   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//   |1 1 1 1 1 1 1 1|    Payload (if any) ...
//   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//   ```
//
// - `Ver` is always 1
// - `TKL` is the token length, 0 to 8. 9 to 15 are reserved
// - `Code` is a 3 bit class and a 5 bit detail, written `c.dd`
//
// === Options
//
// Each option starts with one byte holding a delta nibble and a length
// nibble, followed by the extended delta, the extended length and the value.
//
//   ```
//   nibble 0-12   the value itself
//   nibble 13     one more byte, value - 13
//   nibble 14     two more bytes (big-endian), value - 269
//   nibble 15     reserved, 0xFF is the payload marker
//   ```
//
// The option number is the running sum of the deltas, so options must be
// written in ascending number order. Repeating a number is a delta of 0.
//
// === Parsing
//
//   ```
//   msg, err := coap.Parse(datagram)
//   if err != nil {
//     // drop it
//   }
//
//   it := msg.Options.Iter()
//   for opt, ok := it.Next(); ok; opt, ok = it.Next() {
//     ...
//   }
//   ```
//
// The Message borrows the datagram, it must not be modified while the
// Message is in use.
//
// === Building
//
//   ```
//   var b coap.Builder
//   err := b.Reset(buf)
//   err = b.Request(coap.Confirmable, coap.GET)
//   err = b.MessageID(0x1234)
//   err = b.NoToken()
//   err = b.OptionString(coap.URIPath, "sensors")
//   err = b.NoPayload()
//   datagram, err := b.Build()
//   ```
//
// Every step must be called in that order. A step called out of order
// returns ErrBuilderState and leaves the buffer alone.
//
