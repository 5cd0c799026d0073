package check_snmp_ups

import "fmt"

// Variable is one scalar reading addressable on the device MIB.
type Variable struct {
	Name string
	OID  string
}

// SNMPv2 system group scalars.
var (
	varSysName     = Variable{"sysName", ".1.3.6.1.2.1.1.5.0"}
	varSysContact  = Variable{"sysContact", ".1.3.6.1.2.1.1.4.0"}
	varSysLocation = Variable{"sysLocation", ".1.3.6.1.2.1.1.6.0"}
)

// RFC 1628 UPS-MIB scalars. Voltage, current and frequency readings in
// the battery/input/output groups come back as integers in tenths of a
// unit except the RMS voltages, which are whole volts.
var (
	varIdentName        = Variable{"upsIdentName", ".1.3.6.1.2.1.33.1.1.5.0"}
	varSoftwareVersion  = Variable{"upsIdentUPSSoftwareVersion", ".1.3.6.1.2.1.33.1.1.3.0"}
	varBatteryStatus    = Variable{"upsBatteryStatus", ".1.3.6.1.2.1.33.1.2.1.0"}
	varMinutesRemaining = Variable{"upsEstimatedMinutesRemaining", ".1.3.6.1.2.1.33.1.2.3.0"}
	varChargeRemaining  = Variable{"upsEstimatedChargeRemaining", ".1.3.6.1.2.1.33.1.2.4.0"}
	varBatteryVoltage   = Variable{"upsBatteryVoltage", ".1.3.6.1.2.1.33.1.2.5.0"}
	varBatteryTemp      = Variable{"upsBatteryTemperature", ".1.3.6.1.2.1.33.1.2.7.0"}
	varInputFrequency   = Variable{"upsInputFrequency", ".1.3.6.1.2.1.33.1.3.3.1.2.1"}
	varInputVoltage     = Variable{"upsInputVoltage", ".1.3.6.1.2.1.33.1.3.3.1.3.1"}
	varInputCurrent     = Variable{"upsInputCurrent", ".1.3.6.1.2.1.33.1.3.3.1.4.1"}
	varInputPower       = Variable{"upsInputTruePower", ".1.3.6.1.2.1.33.1.3.3.1.5.1"}
	varOutputSource     = Variable{"upsOutputSource", ".1.3.6.1.2.1.33.1.4.1.0"}
	varOutputFrequency  = Variable{"upsOutputFrequency", ".1.3.6.1.2.1.33.1.4.2.0"}
	varOutputVoltage    = Variable{"upsOutputVoltage", ".1.3.6.1.2.1.33.1.4.4.1.2.1"}
	varOutputCurrent    = Variable{"upsOutputCurrent", ".1.3.6.1.2.1.33.1.4.4.1.3.1"}
	varOutputPower      = Variable{"upsOutputPower", ".1.3.6.1.2.1.33.1.4.4.1.4.1"}
	varOutputLoad       = Variable{"upsOutputPercentLoad", ".1.3.6.1.2.1.33.1.4.4.1.5.1"}
)

// Category selects which variables are fetched and which rule
// classifies them. Set once per invocation from the -s flag.
type Category string

const (
	CategoryInfo        Category = "info"
	CategoryStatus      Category = "status"
	CategoryBattery     Category = "battery"
	CategoryTemperature Category = "temperature"
	CategoryInput       Category = "input"
	CategoryOutput      Category = "output"
	CategoryLoad        Category = "load"
)

var categoryVariables = map[Category][]Variable{
	CategoryInfo:        {varSysName, varSysLocation, varSysContact, varIdentName, varSoftwareVersion, varOutputSource},
	CategoryStatus:      {varOutputSource},
	CategoryBattery:     {varBatteryStatus, varChargeRemaining, varBatteryVoltage, varMinutesRemaining},
	CategoryTemperature: {varBatteryTemp},
	CategoryInput:       {varInputVoltage, varInputCurrent, varInputPower, varInputFrequency},
	CategoryOutput:      {varOutputVoltage, varOutputCurrent, varOutputPower, varOutputFrequency},
	CategoryLoad:        {varOutputLoad},
}

// Variables returns the fetch set for this category.
func (c Category) Variables() []Variable {
	return categoryVariables[c]
}

// OutputSource is the upsOutputSource enumeration from RFC 1628.
type OutputSource int64

const (
	SourceOther OutputSource = iota + 1
	SourceNone
	SourceNormal
	SourceBypass
	SourceBattery
	SourceBooster
	SourceReducer
)

func (s OutputSource) String() string {
	switch s {
	case SourceOther:
		return "Other"
	case SourceNone:
		return "None"
	case SourceNormal:
		return "Normal"
	case SourceBypass:
		return "Bypass"
	case SourceBattery:
		return "Battery"
	case SourceBooster:
		return "Booster"
	case SourceReducer:
		return "Reducer"
	default:
		return fmt.Sprintf("unknown(%d)", int64(s))
	}
}

func (s OutputSource) known() bool {
	return s >= SourceOther && s <= SourceReducer
}

// BatteryStatus is the upsBatteryStatus enumeration from RFC 1628.
type BatteryStatus int64

const (
	BatteryUnknown BatteryStatus = iota + 1
	BatteryNormal
	BatteryLow
	BatteryDepleted
)

func (s BatteryStatus) String() string {
	switch s {
	case BatteryUnknown:
		return "Unknown"
	case BatteryNormal:
		return "Normal"
	case BatteryLow:
		return "Low"
	case BatteryDepleted:
		return "Depleted"
	default:
		return fmt.Sprintf("unknown(%d)", int64(s))
	}
}
