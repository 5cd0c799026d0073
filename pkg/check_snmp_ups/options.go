package check_snmp_ups

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

type upsOpts struct {
	Hostname  string `short:"h" long:"hostname" required:"true" description:"Host name or address of the UPS SNMP agent"`
	Community string `short:"c" long:"community" default:"public" description:"SNMP community string"`
	Port      uint16 `short:"p" long:"port" default:"161" description:"SNMP agent UDP port"`
	Timeout   int    `short:"t" long:"timeout" default:"15" description:"SNMP timeout in seconds"`
	Check     string `short:"s" long:"check" required:"true" choice:"info" choice:"status" choice:"battery" choice:"temperature" choice:"input" choice:"output" choice:"load" description:"Check to run"`
	Verbose   bool   `short:"v" long:"verbose" description:"Log debug information to stderr"`
	Help      bool   `long:"help" description:"Show this help message"`
	Thresholds
}

// Thresholds holds the warning/critical bounds for every numeric
// check. Lower is worse for the battery charge, higher is worse for
// temperature and load, and the mains voltage has a corridor with a
// bound on each side.
type Thresholds struct {
	ChargeWarn   float64 `short:"A" long:"charge-warning" default:"70" description:"Battery charge percent at or below which the state is warning"`
	ChargeCrit   float64 `short:"B" long:"charge-critical" default:"40" description:"Battery charge percent at or below which the state is critical"`
	TempWarn     float64 `short:"C" long:"temp-warning" default:"50" description:"Battery temperature (C) at or above which the state is warning"`
	TempCrit     float64 `short:"D" long:"temp-critical" default:"60" description:"Battery temperature (C) at or above which the state is critical"`
	LoadWarn     float64 `short:"E" long:"load-warning" default:"75" description:"Output load percent at or above which the state is warning"`
	LoadCrit     float64 `short:"F" long:"load-critical" default:"85" description:"Output load percent at or above which the state is critical"`
	VoltLowWarn  float64 `short:"G" long:"volt-low-warning" default:"115" description:"Voltage (V) at or below which the state is warning"`
	VoltLowCrit  float64 `short:"H" long:"volt-low-critical" default:"110" description:"Voltage (V) at or below which the state is critical"`
	VoltHighWarn float64 `short:"I" long:"volt-high-warning" default:"125" description:"Voltage (V) at or above which the state is warning"`
	VoltHighCrit float64 `short:"J" long:"volt-high-critical" default:"130" description:"Voltage (V) at or above which the state is critical"`
}

// validate rejects bound pairs where the critical threshold is not
// strictly more severe than the warning one. Evaluating with such a
// configuration would silently misclassify, so it is refused up front.
func (t *Thresholds) validate() error {
	if t.ChargeCrit >= t.ChargeWarn {
		return fmt.Errorf("charge thresholds inverted: critical %g must be below warning %g", t.ChargeCrit, t.ChargeWarn)
	}
	if t.TempCrit <= t.TempWarn {
		return fmt.Errorf("temperature thresholds inverted: critical %g must be above warning %g", t.TempCrit, t.TempWarn)
	}
	if t.LoadCrit <= t.LoadWarn {
		return fmt.Errorf("load thresholds inverted: critical %g must be above warning %g", t.LoadCrit, t.LoadWarn)
	}
	if !(t.VoltLowCrit < t.VoltLowWarn && t.VoltLowWarn < t.VoltHighWarn && t.VoltHighWarn < t.VoltHighCrit) {
		return fmt.Errorf("voltage thresholds must be ordered low-critical < low-warning < high-warning < high-critical, got %g %g %g %g",
			t.VoltLowCrit, t.VoltLowWarn, t.VoltHighWarn, t.VoltHighCrit)
	}

	return nil
}

func newParser(opts *upsOpts) *flags.Parser {
	psr := flags.NewParser(opts, flags.PassDoubleDash)
	psr.Name = "check_snmp_ups"
	psr.Usage = "-h HOST -s CHECK [OPTIONS]"

	return psr
}

func parseArgs(args []string) (*upsOpts, *flags.Parser, error) {
	opts := &upsOpts{}
	psr := newParser(opts)
	_, err := psr.ParseArgs(args)

	return opts, psr, err
}
