package cmd

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func execute(args ...string) (string, error) {
	c := NewRootCommand()

	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(out)
	c.SetArgs(args)

	err := c.Execute()

	return out.String(), err
}

var _ = Describe("root command", func() {
	BeforeEach(func() {
		exitCode = 0
	})

	When("the version subcommand runs", func() {
		It("prints version and build time", func() {
			out, err := execute("version")

			Expect(err).Should(Succeed())
			Expect(out).Should(ContainSubstring("check-rrsig-expiry"))
			Expect(out).Should(ContainSubstring("Version: undefined"))
			Expect(out).Should(ContainSubstring("Build time: undefined"))
		})
	})

	When("positional arguments are passed", func() {
		It("fails", func() {
			_, err := execute("nosuchcommand")

			Expect(err).Should(HaveOccurred())
		})
	})

	When("an unknown flag is passed", func() {
		It("fails so the caller exits UNKNOWN", func() {
			_, err := execute("--frobnicate")

			Expect(err).Should(HaveOccurred())
		})
	})
})

var _ = Describe("flag defaults", func() {
	It("match the documented check behavior", func() {
		c := NewRootCommand()

		verify := func(name, expected string) {
			flag := c.Flags().Lookup(name)

			ExpectWithOffset(1, flag).ShouldNot(BeNil())
			ExpectWithOffset(1, flag.DefValue).Should(Equal(expected))
		}

		verify("port", "53")
		verify("warning", "8")
		verify("critical", "6")
		verify("timeout", "30s")
		verify("warning-as", "warning")
		verify("critical-as", "critical")
		verify("unknown-as", "unknown")
	})
})

var _ = Describe("command wiring", func() {
	It("exposes the version subcommand", func() {
		c := NewRootCommand()

		names := make([]string, 0)
		for _, sub := range c.Commands() {
			names = append(names, sub.Name())
		}

		Expect(names).Should(ContainElement("version"))
	})

	It("silences cobra's own error output", func() {
		c := NewRootCommand()

		Expect(c.SilenceUsage).Should(BeTrue())
		Expect(c.SilenceErrors).Should(BeTrue())
	})
})
