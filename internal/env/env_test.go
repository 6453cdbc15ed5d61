package env_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/luma/minicoap/internal/env"
)

var _ = Describe("env / LoadConfigFrom()", func() {
	It("has defaults for everything", func() {
		config, err := env.LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
		Expect(err).To(Succeed())
		Expect(config).To(Equal(&env.Config{
			BufferSize:  env.DefaultBufferSize,
			LogLevel:    "info",
			LogEncoding: "json",
		}))
	})

	It("reads MINICOAP_ variables", func() {
		config, err := env.LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{
			"MINICOAP_BUFFER_SIZE":  "64",
			"MINICOAP_LOG_LEVEL":    "debug",
			"MINICOAP_LOG_ENCODING": "console",
			"MINICOAP_PRETTY":       "true",
		}))
		Expect(err).To(Succeed())
		Expect(config).To(Equal(&env.Config{
			BufferSize:  64,
			LogLevel:    "debug",
			LogEncoding: "console",
			Pretty:      true,
		}))
	})

	It("rejects a buffer too small for the header", func() {
		_, err := env.LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{
			"MINICOAP_BUFFER_SIZE": "3",
		}))
		Expect(err).To(MatchError(ContainSubstring("MINICOAP_BUFFER_SIZE")))
	})

	It("returns parse errors", func() {
		_, err := env.LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{
			"MINICOAP_BUFFER_SIZE": "lots",
		}))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("env / MakeLogger()", func() {
	It("builds a logger at the given level", func() {
		log, err := env.MakeLogger("warn", "console")
		Expect(err).To(Succeed())
		defer log.Sync() // nolint:errcheck

		Expect(log.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
		Expect(log.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
	})

	It("defaults to json", func() {
		_, err := env.MakeLogger("info", "")
		Expect(err).To(Succeed())
	})

	It("rejects unknown levels and encodings", func() {
		_, err := env.MakeLogger("loud", "json")
		Expect(err).To(HaveOccurred())

		_, err = env.MakeLogger("info", "xml")
		Expect(err).To(MatchError(ContainSubstring("xml")))
	})
})
