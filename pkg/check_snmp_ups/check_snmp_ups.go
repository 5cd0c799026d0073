package check_snmp_ups

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mackerelio/checkers"
)

// Check runs one probe invocation: parse the arguments, fetch the
// selected category's variables once, classify, print a single plugin
// line. The return value is the monitoring framework exit code.
func Check(ctx context.Context, output io.Writer, args []string) int {
	opts, psr, err := parseArgs(args)
	if opts.Help {
		psr.WriteHelp(output)

		return int(checkers.UNKNOWN)
	}
	if err == nil {
		err = opts.Thresholds.validate()
	}
	if err != nil {
		fmt.Fprintf(output, "%s\n", err.Error())
		psr.WriteHelp(output)

		return int(checkers.UNKNOWN)
	}

	setVerbose(opts.Verbose)
	log.Debugf("checking %s on %s:%d community %q timeout %ds",
		opts.Check, opts.Hostname, opts.Port, opts.Community, opts.Timeout)

	ckr := run(ctx, Category(opts.Check), newSNMPFetcher(opts), opts.Thresholds)
	fmt.Fprintf(output, "%s - %s", ckr.Status, strings.TrimSpace(ckr.Message))

	return int(ckr.Status)
}

// run fetches and evaluates. Any transport failure collapses into one
// uniform critical result, no matter which category was requested.
func run(ctx context.Context, cat Category, fetcher Fetcher, th Thresholds) *checkers.Checker {
	tele, err := fetcher.Fetch(ctx, cat.Variables())
	if err != nil {
		log.Debugf("fetch failed: %s", err.Error())

		return checkers.Critical(transportFailureMessage)
	}

	return cat.Evaluate(tele, th)
}
