package coap_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/luma/minicoap/coap"
)

var _ = Describe("Code", func() {
	It("packs class and detail", func() {
		code, err := coap.NewCode(2, 5)
		Expect(err).To(Succeed())
		Expect(code).To(Equal(coap.Content))
		Expect(code.Class()).To(Equal(uint8(2)))
		Expect(code.Detail()).To(Equal(uint8(5)))
		Expect(code.String()).To(Equal("2.05"))
	})

	It("rejects fields that do not fit", func() {
		_, err := coap.NewCode(8, 0)
		Expect(err).To(HaveOccurred())

		_, err = coap.NewCode(0, 32)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("classification",
		func(code coap.Code, request, response, empty bool) {
			Expect(code.IsRequest()).To(Equal(request))
			Expect(code.IsResponse()).To(Equal(response))
			Expect(code.IsEmpty()).To(Equal(empty))
		},
		Entry("0.00", coap.Empty, false, false, true),
		Entry("GET", coap.GET, true, false, false),
		Entry("iPATCH", coap.IPATCH, true, false, false),
		Entry("2.31 Continue", coap.Continue, false, true, false),
		Entry("4.04", coap.NotFound, false, true, false),
		Entry("5.05", coap.ProxyingNotSupported, false, true, false),
		Entry("reserved class 1", coap.Code(1<<5|1), false, false, false),
		Entry("signalling class 7", coap.Code(7<<5|1), false, false, false),
	)

	It("names methods", func() {
		name, ok := coap.PUT.MethodName()
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("PUT"))

		_, ok = coap.Content.MethodName()
		Expect(ok).To(BeFalse())

		Expect(coap.UnsupportedContentFormat.String()).To(Equal("4.15"))
	})
})

var _ = Describe("MessageType", func() {
	It("uses the short names", func() {
		Expect(coap.Confirmable.String()).To(Equal("CON"))
		Expect(coap.NonConfirmable.String()).To(Equal("NON"))
		Expect(coap.Acknowledgement.String()).To(Equal("ACK"))
		Expect(coap.Reset.String()).To(Equal("RST"))
		Expect(coap.MessageType(4).String()).To(Equal("MessageType(4)"))
	})
})

var _ = Describe("OptionNumber", func() {
	DescribeTable("properties",
		func(n coap.OptionNumber, critical, unsafe, noCacheKey bool) {
			Expect(n.IsCritical()).To(Equal(critical))
			Expect(n.IsUnsafe()).To(Equal(unsafe))
			Expect(n.IsNoCacheKey()).To(Equal(noCacheKey))
		},
		Entry("If-Match", coap.IfMatch, true, false, false),
		Entry("Uri-Host", coap.URIHost, true, true, false),
		Entry("ETag", coap.ETag, false, false, false),
		Entry("Uri-Path", coap.URIPath, true, true, false),
		Entry("Content-Format", coap.ContentFormat, false, false, false),
		Entry("Max-Age", coap.MaxAge, false, true, false),
		Entry("Size1", coap.Size1, false, false, true),
		Entry("Echo", coap.Echo, false, false, true),
		Entry("Request-Tag", coap.RequestTag, false, false, false),
	)

	It("names registered options", func() {
		Expect(coap.URIPath.String()).To(Equal("Uri-Path"))
		Expect(coap.URIPath.IsKnown()).To(BeTrue())

		unknown := coap.OptionNumber(2048)
		Expect(unknown.IsKnown()).To(BeFalse())
		Expect(unknown.String()).To(Equal("Option(2048)"))
	})

	It("looks options up by name", func() {
		n, ok := coap.ParseOptionNumber("content-FORMAT")
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(coap.ContentFormat))

		_, ok = coap.ParseOptionNumber("Content-Type")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("MediaType", func() {
	It("names registered media types", func() {
		Expect(coap.AppJSON.String()).To(Equal("application/json"))
		Expect(coap.TextPlain.String()).To(Equal("text/plain;charset=utf-8"))
		Expect(coap.MediaType(11542).String()).To(Equal("MediaType(11542)"))
	})
})
