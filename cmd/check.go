package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/config"
	"github.com/abundo-se/check-rrsig-expiry/expiry"
	"github.com/abundo-se/check-rrsig-expiry/log"
	"github.com/abundo-se/check-rrsig-expiry/model"
	"github.com/abundo-se/check-rrsig-expiry/zone"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func runCheck(cmd *cobra.Command, args []string) error {
	_ = args

	remap, err := buildRemapping(cmd.Flags())
	if err != nil {
		// flag misuse, handled by Execute as UNKNOWN
		return err
	}

	cfg, err := buildConfig(cmd)
	if err == nil {
		err = cfg.Validate()
	}

	if err != nil {
		return emit(cmd, model.Verdict{Severity: model.SeverityUNKNOWN, Summary: err.Error()}, remap, false)
	}

	log.ConfigureLogger(cfg.Log)

	var key *zone.TSIGKey

	if cfg.TSIGFile != "" && cfg.ZoneFile == "" {
		key, err = zone.ReadTSIGKey(cfg.TSIGFile)
		if err != nil {
			return emit(cmd, model.Verdict{Severity: model.SeverityUNKNOWN, Summary: err.Error()}, remap, cfg.Verbose)
		}
	}

	loader := zone.NewLoader(zone.NewClient())

	records, err := loader.Load(cmd.Context(), zone.Request{
		Zone:     cfg.Zone,
		Host:     cfg.Host,
		Port:     cfg.Port,
		ZoneFile: cfg.ZoneFile,
		TSIG:     key,
		Timeout:  cfg.Timeout.ToDuration(),
	})
	if err != nil {
		return emit(cmd, model.Verdict{Severity: model.SeverityUNKNOWN, Summary: err.Error()}, remap, cfg.Verbose)
	}

	verdict := expiry.Check(records, time.Now(), expiry.Thresholds{
		WarningDays:  cfg.WarningDays,
		CriticalDays: cfg.CriticalDays,
	})

	return emit(cmd, verdict, remap, cfg.Verbose)
}

// buildConfig merges the optional config file with the flags, flags
// win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")

	cfg, err := config.LoadConfig(path, path != "")
	if err != nil {
		return nil, err
	}

	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}

	if flags.Changed("zone") {
		cfg.Zone, _ = flags.GetString("zone")
	}

	if flags.Changed("port") {
		cfg.Port, _ = flags.GetUint16("port")
	}

	if flags.Changed("tsig") {
		cfg.TSIGFile, _ = flags.GetString("tsig")
	}

	if flags.Changed("zonefile") {
		cfg.ZoneFile, _ = flags.GetString("zonefile")
	}

	if flags.Changed("warning") {
		cfg.WarningDays, _ = flags.GetFloat64("warning")
	}

	if flags.Changed("critical") {
		cfg.CriticalDays, _ = flags.GetFloat64("critical")
	}

	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		cfg.Timeout = config.Duration(d)
	}

	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	return cfg, nil
}

func buildRemapping(flags *pflag.FlagSet) (model.Remapping, error) {
	r := model.DefaultRemapping()

	for name, target := range map[string]*model.Severity{
		"warning-as":  &r.Warning,
		"critical-as": &r.Critical,
		"unknown-as":  &r.Unknown,
	} {
		value, _ := flags.GetString(name)

		sev, err := model.ParseSeverity(strings.ToUpper(value))
		if err != nil {
			return r, fmt.Errorf("invalid value '%s' for --%s", value, name)
		}

		*target = sev
	}

	return r, nil
}

// emit prints the plugin line, remembers the exit code and never
// returns an error: a completed check always reports via its verdict.
func emit(cmd *cobra.Command, v model.Verdict, remap model.Remapping, verbose bool) error {
	v.Severity = remap.Apply(v.Severity)

	fmt.Fprintln(cmd.OutOrStdout(), v.RenderLine())

	if verbose {
		for _, detail := range v.Details {
			fmt.Fprintln(cmd.OutOrStdout(), detail)
		}
	}

	exitCode = v.Severity.ExitCode()

	return nil
}
