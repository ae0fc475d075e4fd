package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"persoole/internal/infrastructure/config"
)

var _ = Describe("Load", func() {
	keys := []string{
		"PERSOOLE_ENV",
		"DISCORD_BOT_TOKEN",
		"PERSOOLE_PACE_INTERVAL",
		"PERSOOLE_LOG_LEVEL",
		"PERSOOLE_LOG_FORMAT",
	}

	BeforeEach(func() {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok {
				DeferCleanup(os.Setenv, k, v)
			} else {
				DeferCleanup(os.Unsetenv, k)
			}
			Expect(os.Unsetenv(k)).To(Succeed())
		}
	})

	It("applies defaults", func() {
		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Env).To(Equal(config.EnvDevelopment))
		Expect(cfg.IsDevelopment()).To(BeTrue())
		Expect(cfg.PaceInterval).To(Equal(time.Second))
		Expect(cfg.LogLevel).To(Equal("debug"))
		Expect(cfg.LogFormat).To(Equal(config.FormatText))
		Expect(cfg.DiscordToken).To(BeEmpty())
	})

	It("defaults to info outside development", func() {
		os.Setenv("PERSOOLE_ENV", "production")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.IsProduction()).To(BeTrue())
		Expect(cfg.LogLevel).To(Equal("info"))
	})

	It("reads overrides", func() {
		os.Setenv("DISCORD_BOT_TOKEN", "  secret ")
		os.Setenv("PERSOOLE_PACE_INTERVAL", "250ms")
		os.Setenv("PERSOOLE_LOG_LEVEL", "WARN")
		os.Setenv("PERSOOLE_LOG_FORMAT", "json")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DiscordToken).To(Equal("secret"))
		Expect(cfg.PaceInterval).To(Equal(250 * time.Millisecond))
		Expect(cfg.LogLevel).To(Equal("warn"))
		Expect(cfg.LogFormat).To(Equal(config.FormatJSON))
	})

	DescribeTable("rejects bad values",
		func(key, value string) {
			os.Setenv(key, value)
			_, err := config.Load()
			Expect(err).To(MatchError(ContainSubstring(key)))
		},
		Entry("unparseable interval", "PERSOOLE_PACE_INTERVAL", "soon"),
		Entry("non-positive interval", "PERSOOLE_PACE_INTERVAL", "0s"),
		Entry("unknown level", "PERSOOLE_LOG_LEVEL", "loud"),
		Entry("unknown format", "PERSOOLE_LOG_FORMAT", "xml"),
	)
})
