package main

import (
	"context"
	"os"

	check_snmp_ups "github.com/marcjacquart/HCRO-Nagios-Plugins/pkg/check_snmp_ups"
)

func main() {
	os.Exit(check_snmp_ups.Check(context.Background(), os.Stdout, os.Args[1:]))
}
