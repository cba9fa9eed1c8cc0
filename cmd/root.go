package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/model"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"

	// exit code of the last check run, emitted by Execute
	exitCode int
)

// NewRootCommand creates a new root command
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "check-rrsig-expiry",
		Short: "verifies remaining validity of RRSIG records in a zone",
		Long: `A monitoring check that transfers a DNS zone (AXFR, optionally
TSIG authenticated) or reads it from a file, inspects the validity
window of every RRSIG record and reports the worst finding as a
single OK/WARNING/CRITICAL/UNKNOWN verdict.`,
		Args:          cobra.NoArgs,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.Flags().StringP("host", "H", "", "host to transfer the zone from")
	c.Flags().String("zone", "", "zone to transfer")
	c.Flags().Uint16P("port", "p", 53, "port of the DNS server")
	c.Flags().String("tsig", "", "path to a TSIG key file (YAML with name, algorithm and secret)")
	c.Flags().String("zonefile", "", "read the zone from a file instead of AXFR")
	c.Flags().Float64P("warning", "w", 8.0, "minimum remaining validity in days before WARNING")
	c.Flags().Float64P("critical", "c", 6.0, "minimum remaining validity in days before CRITICAL")
	c.Flags().Duration("timeout", 30*time.Second, "timeout covering connect and the whole transfer")
	c.Flags().String("warning-as", "warning", "report WARNING as this severity")
	c.Flags().String("critical-as", "critical", "report CRITICAL as this severity")
	c.Flags().String("unknown-as", "unknown", "report UNKNOWN as this severity")
	c.Flags().BoolP("verbose", "v", false, "print one detail line per non-OK record")
	c.Flags().String("config", "", "path to config file")

	c.AddCommand(NewVersionCommand())

	return c
}

// Execute runs the check and exits the process with the monitoring
// exit code. Flag errors exit UNKNOWN, a broken invocation must never
// look like a healthy zone.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Println(model.SeverityUNKNOWN.String(), err)
		os.Exit(model.SeverityUNKNOWN.ExitCode())
	}

	os.Exit(exitCode)
}
