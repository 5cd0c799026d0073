package check_snmp_ups

import (
	"os"

	"github.com/kdar/factorlog"
)

// Debug output goes to stderr so the plugin line on stdout stays
// parseable by the monitoring framework.
var log = factorlog.New(os.Stderr, factorlog.NewStdFormatter(`[%{Severity}] %{Message}`))

func init() {
	setVerbose(false)
}

func setVerbose(enabled bool) {
	level := "ERROR"
	if enabled {
		level = "DEBUG"
	}
	log.SetMinMaxSeverity(factorlog.StringToSeverity(level), factorlog.StringToSeverity("PANIC"))
}
