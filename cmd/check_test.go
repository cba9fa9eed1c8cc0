package cmd

import (
	"fmt"

	"github.com/abundo-se/check-rrsig-expiry/helpertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// expiredZone carries one long expired RRSIG, the check on it is
// CRITICAL independently of the wall clock.
const expiredZone = `$ORIGIN example.com.
$TTL 3600
@	IN	SOA	ns1.example.com. hostmaster.example.com. (2024010101 7200 3600 1209600 3600)
@	IN	NS	ns1.example.com.
@	IN	RRSIG	DS 8 2 3600 20150124203956 20150112001201 44410 example.com. dGVzdHNpZ25hdHVyZQ==
`

var _ = Describe("check run", func() {
	BeforeEach(func() {
		exitCode = 0
	})

	When("the zone comes from a file with an expired signature", func() {
		It("prints a CRITICAL plugin line and remembers exit code 2", func() {
			f := helpertest.TempFile(expiredZone)
			DeferCleanup(f.Close)

			out, err := execute("--zonefile", f.Name(), "--zone", "example.com")

			Expect(err).Should(Succeed())
			Expect(out).Should(HavePrefix("CRITICAL "))
			Expect(out).Should(ContainSubstring("expired"))
			Expect(out).Should(ContainSubstring("0 OK, 0 WARNING, 1 CRITICAL"))
			Expect(out).Should(ContainSubstring("|rrsig_min_days="))
			Expect(exitCode).Should(Equal(2))
		})
	})

	When("verbose is enabled", func() {
		It("prints one detail line per non-OK record", func() {
			f := helpertest.TempFile(expiredZone)
			DeferCleanup(f.Close)

			out, err := execute("--zonefile", f.Name(), "--zone", "example.com", "--verbose")

			Expect(err).Should(Succeed())

			lines := 0
			for _, c := range out {
				if c == '\n' {
					lines++
				}
			}

			Expect(lines).Should(Equal(2))
			Expect(out).Should(ContainSubstring("CRITICAL example.com. DS expired"))
		})
	})

	When("CRITICAL is remapped to WARNING", func() {
		It("reports WARNING and exit code 1", func() {
			f := helpertest.TempFile(expiredZone)
			DeferCleanup(f.Close)

			out, err := execute("--zonefile", f.Name(), "--zone", "example.com", "--critical-as", "warning")

			Expect(err).Should(Succeed())
			Expect(out).Should(HavePrefix("WARNING "))
			Expect(exitCode).Should(Equal(1))
		})
	})

	When("a remapping flag has a bogus value", func() {
		It("fails so the caller exits UNKNOWN", func() {
			_, err := execute("--unknown-as", "bogus")

			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("invalid value 'bogus' for --unknown-as"))
		})
	})

	When("neither host nor zone file is given", func() {
		It("reports UNKNOWN instead of a usage error", func() {
			out, err := execute()

			Expect(err).Should(Succeed())
			Expect(out).Should(HavePrefix("UNKNOWN "))
			Expect(out).Should(ContainSubstring("no host specified"))
			Expect(out).Should(ContainSubstring("no zone specified"))
			Expect(exitCode).Should(Equal(3))
		})
	})

	When("the thresholds are inverted", func() {
		It("refuses the configuration as UNKNOWN", func() {
			f := helpertest.TempFile(expiredZone)
			DeferCleanup(f.Close)

			out, err := execute("--zonefile", f.Name(), "--zone", "example.com", "-w", "5", "-c", "6")

			Expect(err).Should(Succeed())
			Expect(out).Should(HavePrefix("UNKNOWN "))
			Expect(out).Should(ContainSubstring("makes no sense"))
			Expect(exitCode).Should(Equal(3))
		})
	})

	When("the zone file is missing", func() {
		It("reports UNKNOWN", func() {
			out, err := execute("--zonefile", "/does/not/exist.zone", "--zone", "example.com")

			Expect(err).Should(Succeed())
			Expect(out).Should(HavePrefix("UNKNOWN "))
			Expect(out).Should(ContainSubstring("zone file not readable"))
			Expect(exitCode).Should(Equal(3))
		})
	})

	When("a config file supplies the settings", func() {
		It("merges it with flags, flags win", func() {
			zoneFile := helpertest.TempFile(expiredZone)
			DeferCleanup(zoneFile.Close)

			cfgFile := helpertest.TempFile(fmt.Sprintf("zoneFile: %s\nzone: example.com\nwarningDays: 9\n", zoneFile.Name()))
			DeferCleanup(cfgFile.Close)

			out, err := execute("--config", cfgFile.Name(), "--critical-as", "warning")

			Expect(err).Should(Succeed())
			Expect(out).Should(HavePrefix("WARNING "))
			Expect(out).Should(ContainSubstring(";9;6"))
			Expect(exitCode).Should(Equal(1))
		})
	})
})
