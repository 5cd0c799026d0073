package check_snmp_ups

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// transportFailureMessage is deliberately uniform: timeouts, refused
// connections, wrong community strings and garbled replies all read
// the same to the operator.
const transportFailureMessage = "problem with SNMP request, check community and host reachability"

// Value is the typed decode of a single varbind. Evaluators only ever
// see Values, never raw protocol data.
type Value struct {
	text  string
	num   int64
	isNum bool
}

func numValue(n int64) Value {
	return Value{text: strconv.FormatInt(n, 10), num: n, isNum: true}
}

func textValue(s string) Value {
	return Value{text: s}
}

// Text returns the reading as the device sent it.
func (v Value) Text() string {
	return v.text
}

// Int returns the numeric reading, or an error if the device answered
// with something that is not a number.
func (v Value) Int() (int64, error) {
	if !v.isNum {
		return 0, fmt.Errorf("expected a number, got %q", v.text)
	}

	return v.num, nil
}

// Tenths renders a tenths-of-a-unit integer with one decimal place.
func (v Value) Tenths() (string, error) {
	n, err := v.Int()
	if err != nil {
		return "", err
	}

	return formatTenths(n), nil
}

func formatTenths(n int64) string {
	return fmt.Sprintf("%.1f", float64(n)/10)
}

// Telemetry holds one invocation's readings keyed by variable name.
// A missing key means the device did not return the variable, which is
// distinct from an empty string value.
type Telemetry map[string]Value

func (t Telemetry) Lookup(v Variable) (Value, bool) {
	val, ok := t[v.Name]

	return val, ok
}

// Fetcher abstracts the SNMP transport so tests can inject a fake.
type Fetcher interface {
	Fetch(ctx context.Context, vars []Variable) (Telemetry, error)
}

type snmpFetcher struct {
	client *gosnmp.GoSNMP
}

func newSNMPFetcher(opts *upsOpts) *snmpFetcher {
	return &snmpFetcher{
		client: &gosnmp.GoSNMP{
			Target:    opts.Hostname,
			Port:      opts.Port,
			Community: opts.Community,
			Version:   gosnmp.Version2c,
			Timeout:   time.Duration(opts.Timeout) * time.Second,
			Retries:   0,
		},
	}
}

// Fetch issues a single Get for the given variables. Variables the
// device does not expose are left out of the returned Telemetry.
func (f *snmpFetcher) Fetch(ctx context.Context, vars []Variable) (Telemetry, error) {
	f.client.Context = ctx
	if err := f.client.Connect(); err != nil {
		return nil, fmt.Errorf("snmp connect: %s", err.Error())
	}
	defer f.client.Conn.Close()

	oids := make([]string, 0, len(vars))
	names := make(map[string]string, len(vars))
	for _, v := range vars {
		oids = append(oids, v.OID)
		names[strings.TrimPrefix(v.OID, ".")] = v.Name
	}
	log.Debugf("snmp get %s:%d: %s", f.client.Target, f.client.Port, strings.Join(oids, " "))

	start := time.Now()
	packet, err := f.client.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("snmp get: %s", err.Error())
	}
	if packet.Error != gosnmp.NoError {
		return nil, fmt.Errorf("snmp error status %d at index %d", packet.Error, packet.ErrorIndex)
	}
	log.Debugf("snmp reply after %s with %d varbinds", time.Since(start), len(packet.Variables))

	tele := make(Telemetry, len(vars))
	for _, pdu := range packet.Variables {
		name, ok := names[strings.TrimPrefix(pdu.Name, ".")]
		if !ok {
			log.Debugf("ignoring unexpected varbind %s", pdu.Name)

			continue
		}
		val, ok := decodePDU(pdu)
		if !ok {
			log.Debugf("%s not present on this device", name)

			continue
		}
		log.Debugf("%s = %s", name, val.Text())
		tele[name] = val
	}

	return tele, nil
}

// decodePDU converts a varbind into a typed Value. The second return
// is false when the device reported the object as absent.
func decodePDU(pdu gosnmp.SnmpPDU) (Value, bool) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return Value{}, false
	case gosnmp.OctetString:
		raw, ok := pdu.Value.([]byte)
		if !ok {
			return textValue(fmt.Sprintf("%v", pdu.Value)), true
		}

		return textValue(string(raw)), true
	default:
		return numValue(gosnmp.ToBigInt(pdu.Value).Int64()), true
	}
}
