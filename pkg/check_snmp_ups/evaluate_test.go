package check_snmp_ups

import (
	"context"
	"fmt"
	"testing"

	"github.com/mackerelio/checkers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultThresholds(t *testing.T) Thresholds {
	t.Helper()
	opts, _, err := parseArgs([]string{"-h", "ups.example.com", "-s", "battery"})
	require.NoErrorf(t, err, "defaults parse")

	return opts.Thresholds
}

type fakeFetcher struct {
	tele Telemetry
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ []Variable) (Telemetry, error) {
	return f.tele, f.err
}

func TestEvalBattery(t *testing.T) {
	th := defaultThresholds(t)
	tele := Telemetry{
		"upsBatteryStatus":             numValue(2),
		"upsEstimatedChargeRemaining":  numValue(80),
		"upsBatteryVoltage":            numValue(240),
		"upsEstimatedMinutesRemaining": numValue(42),
	}

	res := CategoryBattery.Evaluate(tele, th)
	assert.Equalf(t, checkers.OK, res.Status, "state ok")
	assert.Containsf(t, res.Message, "battery charge 80%", "charge in message")
	assert.Containsf(t, res.Message, "Normal", "decoded battery status in message")
	assert.Containsf(t, res.Message, "24.0V", "decoded voltage in message")
	assert.Containsf(t, res.Message, "42 minutes remaining", "runtime in message")

	tele["upsEstimatedChargeRemaining"] = numValue(50)
	assert.Equalf(t, checkers.WARNING, CategoryBattery.Evaluate(tele, th).Status, "charge 50 is warning")

	tele["upsEstimatedChargeRemaining"] = numValue(70)
	assert.Equalf(t, checkers.WARNING, CategoryBattery.Evaluate(tele, th).Status, "charge at the warning bound is warning")

	tele["upsEstimatedChargeRemaining"] = numValue(40)
	assert.Equalf(t, checkers.CRITICAL, CategoryBattery.Evaluate(tele, th).Status, "charge at the critical bound is critical")

	tele["upsEstimatedChargeRemaining"] = numValue(30)
	assert.Equalf(t, checkers.CRITICAL, CategoryBattery.Evaluate(tele, th).Status, "charge 30 is critical")
}

func TestEvalBatteryMissingData(t *testing.T) {
	th := defaultThresholds(t)

	res := CategoryBattery.Evaluate(Telemetry{"upsEstimatedChargeRemaining": numValue(80)}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "missing voltage is a warning")
	assert.Equalf(t, "no battery information returned", res.Message, "missing data message")

	res = CategoryBattery.Evaluate(Telemetry{"upsBatteryVoltage": numValue(240)}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "missing charge is a warning")

	tele := Telemetry{
		"upsEstimatedChargeRemaining": numValue(80),
		"upsBatteryVoltage":           numValue(240),
	}
	res = CategoryBattery.Evaluate(tele, th)
	assert.Equalf(t, checkers.OK, res.Status, "absent informational fields keep the severity")
	assert.Containsf(t, res.Message, "no battery status received", "status fallback in message")
	assert.Containsf(t, res.Message, "no runtime data received", "runtime fallback in message")
}

func TestEvalBatteryUnparseable(t *testing.T) {
	th := defaultThresholds(t)
	tele := Telemetry{
		"upsEstimatedChargeRemaining": textValue("full"),
		"upsBatteryVoltage":           numValue(240),
	}

	res := CategoryBattery.Evaluate(tele, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "unparseable charge is a warning")
	assert.Containsf(t, res.Message, `"full"`, "raw value echoed")
}

func TestEvalStatus(t *testing.T) {
	th := defaultThresholds(t)
	for code, expected := range map[int64]checkers.Status{
		1: checkers.WARNING,  // Other
		2: checkers.WARNING,  // None
		3: checkers.OK,       // Normal
		4: checkers.WARNING,  // Bypass
		5: checkers.CRITICAL, // Battery
		6: checkers.WARNING,  // Booster
		7: checkers.WARNING,  // Reducer
	} {
		res := CategoryStatus.Evaluate(Telemetry{"upsOutputSource": numValue(code)}, th)
		assert.Equalf(t, expected, res.Status, "output source code %d", code)
	}

	res := CategoryStatus.Evaluate(Telemetry{"upsOutputSource": numValue(9)}, th)
	assert.Equalf(t, checkers.UNKNOWN, res.Status, "unknown code is unknown")
	assert.Containsf(t, res.Message, "unknown(9)", "raw code echoed")

	res = CategoryStatus.Evaluate(Telemetry{}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "absent code is a warning")
	assert.Containsf(t, res.Message, "no output source status returned", "missing data message")
}

func TestEvalInfo(t *testing.T) {
	th := defaultThresholds(t)
	tele := Telemetry{
		"sysName":                    textValue("ups1"),
		"sysLocation":                textValue("container 3"),
		"sysContact":                 textValue("ops@example.com"),
		"upsIdentName":               textValue("Smart-UPS 1500"),
		"upsIdentUPSSoftwareVersion": textValue("652.13.D"),
		"upsOutputSource":            numValue(3),
	}

	res := CategoryInfo.Evaluate(tele, th)
	assert.Equalf(t, checkers.OK, res.Status, "info is ok")
	assert.Containsf(t, res.Message, "ups1", "name in message")
	assert.Containsf(t, res.Message, "firmware 652.13.D", "firmware in message")
	assert.Containsf(t, res.Message, "source Normal", "output source in message")

	res = CategoryInfo.Evaluate(Telemetry{"sysName": textValue("")}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "all empty is a warning")
	assert.Equalf(t, "no UPS information returned", res.Message, "empty info message")
}

func TestEvalTemperature(t *testing.T) {
	th := defaultThresholds(t)
	for temp, expected := range map[int64]checkers.Status{
		34: checkers.OK,
		49: checkers.OK,
		50: checkers.WARNING,
		59: checkers.WARNING,
		60: checkers.CRITICAL,
		75: checkers.CRITICAL,
	} {
		res := CategoryTemperature.Evaluate(Telemetry{"upsBatteryTemperature": numValue(temp)}, th)
		assert.Equalf(t, expected, res.Status, "temperature %d", temp)
	}

	res := CategoryTemperature.Evaluate(Telemetry{"upsBatteryTemperature": numValue(34)}, th)
	assert.Containsf(t, res.Message, "battery temperature 34C", "temperature in message")

	res = CategoryTemperature.Evaluate(Telemetry{}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "missing temperature is a warning")
}

func TestEvalInput(t *testing.T) {
	th := defaultThresholds(t)
	tele := Telemetry{
		"upsInputVoltage":   numValue(120),
		"upsInputCurrent":   numValue(25),
		"upsInputTruePower": numValue(230),
		"upsInputFrequency": numValue(500),
	}

	res := CategoryInput.Evaluate(tele, th)
	assert.Equalf(t, checkers.OK, res.Status, "120V is ok")
	assert.Containsf(t, res.Message, "input voltage 120V", "voltage in message")
	assert.Containsf(t, res.Message, "current 2.5A", "current in message")
	assert.Containsf(t, res.Message, "power 230W", "power in message")
	assert.Containsf(t, res.Message, "frequency 50.0Hz", "frequency in message")

	tele["upsInputVoltage"] = numValue(112)
	assert.Equalf(t, checkers.WARNING, CategoryInput.Evaluate(tele, th).Status, "112V between low bounds is warning")

	tele["upsInputVoltage"] = numValue(105)
	assert.Equalf(t, checkers.CRITICAL, CategoryInput.Evaluate(tele, th).Status, "105V below low critical is critical")

	tele["upsInputVoltage"] = numValue(128)
	assert.Equalf(t, checkers.WARNING, CategoryInput.Evaluate(tele, th).Status, "128V between high bounds is warning")

	tele["upsInputVoltage"] = numValue(135)
	assert.Equalf(t, checkers.CRITICAL, CategoryInput.Evaluate(tele, th).Status, "135V above high critical is critical")
}

func TestEvalInputDegradesGracefully(t *testing.T) {
	th := defaultThresholds(t)

	res := CategoryInput.Evaluate(Telemetry{"upsInputVoltage": numValue(120)}, th)
	assert.Equalf(t, checkers.OK, res.Status, "informational fields never change the severity")
	assert.Containsf(t, res.Message, "no current data received", "current fallback")
	assert.Containsf(t, res.Message, "no power data received", "power fallback")
	assert.Containsf(t, res.Message, "no frequency data received", "frequency fallback")

	res = CategoryInput.Evaluate(Telemetry{}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "missing voltage is a warning")
	assert.Containsf(t, res.Message, "no input voltage returned", "missing voltage message")
}

func TestEvalOutput(t *testing.T) {
	th := defaultThresholds(t)
	tele := Telemetry{
		"upsOutputVoltage":   numValue(118),
		"upsOutputCurrent":   numValue(31),
		"upsOutputPower":     numValue(350),
		"upsOutputFrequency": numValue(499),
	}

	res := CategoryOutput.Evaluate(tele, th)
	assert.Equalf(t, checkers.OK, res.Status, "118V is ok")
	assert.Containsf(t, res.Message, "output voltage 118V", "voltage in message")
	assert.Containsf(t, res.Message, "current 3.1A", "current in message")
	assert.Containsf(t, res.Message, "frequency 49.9Hz", "frequency in message")
}

func TestEvalLoad(t *testing.T) {
	th := defaultThresholds(t)
	for load, expected := range map[int64]checkers.Status{
		42: checkers.OK,
		74: checkers.OK,
		75: checkers.WARNING,
		84: checkers.WARNING,
		85: checkers.CRITICAL,
		99: checkers.CRITICAL,
	} {
		res := CategoryLoad.Evaluate(Telemetry{"upsOutputPercentLoad": numValue(load)}, th)
		assert.Equalf(t, expected, res.Status, "load %d", load)
	}

	res := CategoryLoad.Evaluate(Telemetry{"upsOutputPercentLoad": numValue(42)}, th)
	assert.Equalf(t, "output load 42%", res.Message, "load message")

	res = CategoryLoad.Evaluate(Telemetry{}, th)
	assert.Equalf(t, checkers.WARNING, res.Status, "missing load is a warning")
}

func TestEvaluateIdempotent(t *testing.T) {
	th := defaultThresholds(t)
	tele := Telemetry{
		"upsBatteryStatus":            numValue(2),
		"upsEstimatedChargeRemaining": numValue(55),
		"upsBatteryVoltage":           numValue(241),
	}

	first := CategoryBattery.Evaluate(tele, th)
	second := CategoryBattery.Evaluate(tele, th)
	assert.Equalf(t, first.Status, second.Status, "same status")
	assert.Equalf(t, first.Message, second.Message, "same message")
}

func TestRunTransportFailure(t *testing.T) {
	th := defaultThresholds(t)
	fetcher := &fakeFetcher{err: fmt.Errorf("snmp get: request timeout (after 0 retries)")}

	for _, cat := range []Category{
		CategoryInfo, CategoryStatus, CategoryBattery,
		CategoryTemperature, CategoryInput, CategoryOutput, CategoryLoad,
	} {
		res := run(context.Background(), cat, fetcher, th)
		assert.Equalf(t, checkers.CRITICAL, res.Status, "%s transport failure is critical", cat)
		assert.Equalf(t, transportFailureMessage, res.Message, "%s transport failure message is uniform", cat)
	}
}

func TestRunUsesFetchedTelemetry(t *testing.T) {
	th := defaultThresholds(t)
	fetcher := &fakeFetcher{tele: Telemetry{"upsOutputSource": numValue(5)}}

	res := run(context.Background(), CategoryStatus, fetcher, th)
	assert.Equalf(t, checkers.CRITICAL, res.Status, "on battery is critical")
	assert.Containsf(t, res.Message, "Battery", "decoded source in message")
}
