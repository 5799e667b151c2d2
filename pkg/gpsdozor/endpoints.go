package gpsdozor

import (
	"context"
	"strings"
)

// Groups lists the vehicle groups visible to the account.
func (c *Client) Groups(ctx context.Context) (Payload, error) {
	return c.Fetch(ctx, "/groups")
}

// Vehicles lists the vehicles of a group.
func (c *Client) Vehicles(ctx context.Context, groupCode string) (Payload, error) {
	return c.Fetch(ctx, "/vehicles/group/"+groupCode)
}

// Vehicle returns the detail of a single vehicle.
func (c *Client) Vehicle(ctx context.Context, vehicleCode string) (Payload, error) {
	return c.Fetch(ctx, "/vehicle/"+vehicleCode)
}

// History returns position history for one or more vehicles. Codes are joined
// with commas in the order given.
func (c *Client) History(ctx context.Context, vehicleCodes []string, from, to string) (Payload, error) {
	codes := strings.Join(vehicleCodes, ",")
	return c.Fetch(ctx, "/vehicles/history/"+codes+rangeQuery(from, to))
}

// VehicleHistory is History for a single vehicle.
func (c *Client) VehicleHistory(ctx context.Context, vehicleCode, from, to string) (Payload, error) {
	return c.History(ctx, []string{vehicleCode}, from, to)
}

// Trips returns the trip log of a vehicle.
func (c *Client) Trips(ctx context.Context, vehicleCode, from, to string) (Payload, error) {
	return c.Fetch(ctx, "/vehicle/"+vehicleCode+"/trips"+rangeQuery(from, to))
}

// Sensors returns time series for a comma-separated list of sensor types,
// see SensorList. Unknown names are left for the service to reject.
func (c *Client) Sensors(ctx context.Context, vehicleCode, sensors, from, to string) (Payload, error) {
	return c.Fetch(ctx, "/vehicle/"+vehicleCode+"/sensors/"+sensors+rangeQuery(from, to))
}

// EcoDrivingEvents returns eco-driving events of a vehicle.
func (c *Client) EcoDrivingEvents(ctx context.Context, vehicleCode, from, to string) (Payload, error) {
	return c.Fetch(ctx, "/vehicle/"+vehicleCode+"/eco-driving-events"+rangeQuery(from, to))
}

// EngineRelayState returns the engine relay state of a vehicle.
func (c *Client) EngineRelayState(ctx context.Context, vehicleCode string) (Payload, error) {
	return c.Fetch(ctx, "/vehicle/"+vehicleCode+"/getEngineRelayState")
}

// rangeQuery renders the from/to query verbatim, no escaping.
func rangeQuery(from, to string) string {
	return "?from=" + from + "&to=" + to
}
