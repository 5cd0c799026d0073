package check_snmp_ups

import (
	"fmt"
	"strings"

	"github.com/mackerelio/checkers"
)

// Evaluate classifies one set of readings. It is pure: the same
// telemetry and thresholds always produce the same result.
func (c Category) Evaluate(tele Telemetry, th Thresholds) *checkers.Checker {
	switch c {
	case CategoryInfo:
		return evalInfo(tele)
	case CategoryStatus:
		return evalStatus(tele)
	case CategoryBattery:
		return evalBattery(tele, th)
	case CategoryTemperature:
		return evalTemperature(tele, th)
	case CategoryInput:
		return evalPower(tele, th, varInputVoltage, varInputCurrent, varInputPower, varInputFrequency, "input")
	case CategoryOutput:
		return evalPower(tele, th, varOutputVoltage, varOutputCurrent, varOutputPower, varOutputFrequency, "output")
	case CategoryLoad:
		return evalLoad(tele, th)
	}

	return checkers.Unknown(fmt.Sprintf("unknown check %q", string(c)))
}

// evalInfo is purely descriptive, there are no thresholds to compare
// against.
func evalInfo(tele Telemetry) *checkers.Checker {
	fields := make([]string, 0, 6)
	for _, v := range []Variable{varSysName, varSysLocation, varSysContact, varIdentName} {
		if val, ok := tele.Lookup(v); ok && val.Text() != "" {
			fields = append(fields, val.Text())
		}
	}
	if val, ok := tele.Lookup(varSoftwareVersion); ok && val.Text() != "" {
		fields = append(fields, "firmware "+val.Text())
	}
	if val, ok := tele.Lookup(varOutputSource); ok {
		if code, err := val.Int(); err == nil {
			fields = append(fields, "source "+OutputSource(code).String())
		}
	}
	if len(fields) == 0 {
		return checkers.Warning("no UPS information returned")
	}

	return checkers.Ok(strings.Join(fields, ", "))
}

func evalStatus(tele Telemetry) *checkers.Checker {
	val, ok := tele.Lookup(varOutputSource)
	if !ok {
		return checkers.Warning("no output source status returned")
	}
	code, err := val.Int()
	if err != nil {
		return checkers.Warning(fmt.Sprintf("unreadable output source status %q", val.Text()))
	}

	source := OutputSource(code)
	msg := "output source " + source.String()
	switch {
	case !source.known():
		return checkers.Unknown(msg)
	case source == SourceNormal:
		return checkers.Ok(msg)
	case source == SourceBattery:
		return checkers.Critical(msg)
	default:
		return checkers.Warning(msg)
	}
}

// evalBattery classifies on the charge percentage. Battery status,
// voltage and estimated runtime are reported but never drive the
// severity on their own.
func evalBattery(tele Telemetry, th Thresholds) *checkers.Checker {
	chargeVal, haveCharge := tele.Lookup(varChargeRemaining)
	voltVal, haveVolt := tele.Lookup(varBatteryVoltage)
	if !haveCharge || !haveVolt {
		return checkers.Warning("no battery information returned")
	}
	charge, err := chargeVal.Int()
	if err != nil {
		return checkers.Warning(fmt.Sprintf("unreadable battery charge %q", chargeVal.Text()))
	}
	volt, err := voltVal.Tenths()
	if err != nil {
		return checkers.Warning(fmt.Sprintf("unreadable battery voltage %q", voltVal.Text()))
	}

	details := make([]string, 0, 3)
	if val, ok := tele.Lookup(varBatteryStatus); ok {
		if code, cErr := val.Int(); cErr == nil {
			details = append(details, "status "+BatteryStatus(code).String())
		} else {
			details = append(details, fmt.Sprintf("unreadable battery status %q", val.Text()))
		}
	} else {
		details = append(details, "no battery status received")
	}
	details = append(details, fmt.Sprintf("voltage %sV", volt))
	if val, ok := tele.Lookup(varMinutesRemaining); ok {
		if mins, mErr := val.Int(); mErr == nil {
			details = append(details, fmt.Sprintf("%d minutes remaining", mins))
		} else {
			details = append(details, fmt.Sprintf("unreadable runtime %q", val.Text()))
		}
	} else {
		details = append(details, "no runtime data received")
	}

	sev := classify(float64(charge), th.ChargeWarn, th.ChargeCrit, lowerIsWorse)
	msg := fmt.Sprintf("battery charge %d%% - %s", charge, strings.Join(details, ", "))

	return checkers.NewChecker(sev, msg)
}

func evalTemperature(tele Telemetry, th Thresholds) *checkers.Checker {
	val, ok := tele.Lookup(varBatteryTemp)
	if !ok {
		return checkers.Warning("no temperature information returned")
	}
	temp, err := val.Int()
	if err != nil {
		return checkers.Warning(fmt.Sprintf("unreadable battery temperature %q", val.Text()))
	}

	sev := classify(float64(temp), th.TempWarn, th.TempCrit, higherIsWorse)

	return checkers.NewChecker(sev, fmt.Sprintf("battery temperature %dC", temp))
}

// evalPower covers the input and output sides, which only differ in
// the variable set. The RMS voltage drives the severity through the
// two-sided corridor, everything else is informational.
func evalPower(tele Telemetry, th Thresholds, voltVar, currentVar, powerVar, freqVar Variable, side string) *checkers.Checker {
	voltVal, ok := tele.Lookup(voltVar)
	if !ok {
		return checkers.Warning(fmt.Sprintf("no %s voltage returned", side))
	}
	volt, err := voltVal.Int()
	if err != nil {
		return checkers.Warning(fmt.Sprintf("unreadable %s voltage %q", side, voltVal.Text()))
	}

	details := make([]string, 0, 3)
	if val, haveCurrent := tele.Lookup(currentVar); haveCurrent {
		if amps, aErr := val.Tenths(); aErr == nil {
			details = append(details, fmt.Sprintf("current %sA", amps))
		} else {
			details = append(details, fmt.Sprintf("unreadable current %q", val.Text()))
		}
	} else {
		details = append(details, "no current data received")
	}
	if val, havePower := tele.Lookup(powerVar); havePower {
		if watts, wErr := val.Int(); wErr == nil {
			details = append(details, fmt.Sprintf("power %dW", watts))
		} else {
			details = append(details, fmt.Sprintf("unreadable power %q", val.Text()))
		}
	} else {
		details = append(details, "no power data received")
	}
	if val, haveFreq := tele.Lookup(freqVar); haveFreq {
		if hertz, hErr := val.Tenths(); hErr == nil {
			details = append(details, fmt.Sprintf("frequency %sHz", hertz))
		} else {
			details = append(details, fmt.Sprintf("unreadable frequency %q", val.Text()))
		}
	} else {
		details = append(details, "no frequency data received")
	}

	sev := classifyBand(float64(volt), th.VoltLowWarn, th.VoltLowCrit, th.VoltHighWarn, th.VoltHighCrit)
	msg := fmt.Sprintf("%s voltage %dV - %s", side, volt, strings.Join(details, ", "))

	return checkers.NewChecker(sev, msg)
}

func evalLoad(tele Telemetry, th Thresholds) *checkers.Checker {
	val, ok := tele.Lookup(varOutputLoad)
	if !ok {
		return checkers.Warning("no load information returned")
	}
	load, err := val.Int()
	if err != nil {
		return checkers.Warning(fmt.Sprintf("unreadable output load %q", val.Text()))
	}

	sev := classify(float64(load), th.LoadWarn, th.LoadCrit, higherIsWorse)

	return checkers.NewChecker(sev, fmt.Sprintf("output load %d%%", load))
}
