package config

import (
	"time"

	"github.com/abundo-se/check-rrsig-expiry/helpertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Describe("LoadConfig", func() {
		When("no path is given", func() {
			It("uses the defaults", func() {
				cfg, err := LoadConfig("", false)

				Expect(err).Should(Succeed())
				Expect(cfg.Port).Should(Equal(uint16(53)))
				Expect(cfg.WarningDays).Should(Equal(8.0))
				Expect(cfg.CriticalDays).Should(Equal(6.0))
				Expect(cfg.Timeout.ToDuration()).Should(Equal(30 * time.Second))
			})
		})

		When("a config file is given", func() {
			It("overrides the defaults", func() {
				f := helpertest.TempFile(
					`host: ns1.example.com
zone: example.com
warningDays: 10
timeout: 1m
log:
  level: debug
`)
				DeferCleanup(f.Close)

				cfg, err := LoadConfig(f.Name(), true)

				Expect(err).Should(Succeed())
				Expect(cfg.Host).Should(Equal("ns1.example.com"))
				Expect(cfg.Zone).Should(Equal("example.com"))
				Expect(cfg.WarningDays).Should(Equal(10.0))
				Expect(cfg.CriticalDays).Should(Equal(6.0))
				Expect(cfg.Timeout.ToDuration()).Should(Equal(time.Minute))
			})
			It("rejects unknown settings", func() {
				f := helpertest.TempFile("hosst: typo.example.com\n")
				DeferCleanup(f.Close)

				_, err := LoadConfig(f.Name(), true)

				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(ContainSubstring("wrong file structure"))
			})
		})

		When("the file is missing", func() {
			It("fails if mandatory", func() {
				_, err := LoadConfig("/does/not/exist.yml", true)

				Expect(err).Should(HaveOccurred())
			})
			It("falls back to defaults otherwise", func() {
				cfg, err := LoadConfig("/does/not/exist.yml", false)

				Expect(err).Should(Succeed())
				Expect(cfg.Port).Should(Equal(uint16(53)))
			})
		})
	})

	Describe("Validate", func() {
		var cfg *Config

		BeforeEach(func() {
			var err error
			cfg, err = LoadConfig("", false)
			Expect(err).Should(Succeed())

			cfg.Host = "ns1.example.com"
			cfg.Zone = "example.com"
		})

		It("accepts a sane transfer configuration", func() {
			Expect(cfg.Validate()).Should(Succeed())
		})

		It("rejects warning below or at critical", func() {
			cfg.WarningDays = 6.0
			cfg.CriticalDays = 6.0

			err := cfg.Validate()

			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("makes no sense"))
		})

		It("requires host and zone without a zone file", func() {
			cfg.Host = ""
			cfg.Zone = ""

			err := cfg.Validate()

			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("no host specified"))
			Expect(err.Error()).Should(ContainSubstring("no zone specified"))
		})

		It("accepts a zone file without host and zone", func() {
			cfg.Host = ""
			cfg.Zone = ""
			cfg.ZoneFile = "/var/cache/zones/example.com"

			Expect(cfg.Validate()).Should(Succeed())
		})

		It("rejects a zero timeout", func() {
			cfg.Timeout = Duration(0)

			err := cfg.Validate()

			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("timeout"))
		})
	})
})
