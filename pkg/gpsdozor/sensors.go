package gpsdozor

import "strings"

// SensorType names a telemetry channel the service reports time series for.
type SensorType string

const (
	SensorFuelActualVolume               SensorType = "FuelActualVolume"
	SensorFuelActualVolumeFromPercentage SensorType = "FuelActualVolumeFromPercentage"
	SensorFuelConsumedTotal              SensorType = "FuelConsumedTotal"
	SensorFuelConsumptionActual          SensorType = "FuelConsumptionActual"
	SensorSpeed                          SensorType = "Speed"
	SensorRpm                            SensorType = "Rpm"
	SensorOdometer                       SensorType = "Odometer"
	SensorTemperature1                   SensorType = "Temperature1"
	SensorTemperature2                   SensorType = "Temperature2"
	SensorTemperature3                   SensorType = "Temperature3"
	SensorTemperature4                   SensorType = "Temperature4"
	SensorAltitude                       SensorType = "Altitude"
	SensorThrottlePercentage             SensorType = "ThrottlePercentage"
)

// KnownSensors lists the documented sensor vocabulary.
func KnownSensors() []SensorType {
	return []SensorType{
		SensorFuelActualVolume,
		SensorFuelActualVolumeFromPercentage,
		SensorFuelConsumedTotal,
		SensorFuelConsumptionActual,
		SensorSpeed,
		SensorRpm,
		SensorOdometer,
		SensorTemperature1,
		SensorTemperature2,
		SensorTemperature3,
		SensorTemperature4,
		SensorAltitude,
		SensorThrottlePercentage,
	}
}

// SensorList joins sensor types with commas for Client.Sensors.
// Membership in KnownSensors is not checked.
func SensorList(sensors ...SensorType) string {
	names := make([]string, len(sensors))
	for i, s := range sensors {
		names[i] = string(s)
	}
	return strings.Join(names, ",")
}
