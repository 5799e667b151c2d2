package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dozor-fleet/gpsdozor-client/pkg/gpsdozor"
)

// dateRange holds the --from/--to flags as calendar days.
type dateRange struct {
	from string
	to   string
}

func addRangeFlags(cmd *cobra.Command, r *dateRange) {
	cmd.Flags().StringVar(&r.from, "from", "", "first day, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&r.to, "to", "", "last day, YYYY-MM-DD (default --from)")
}

// bounds returns the API from/to values: start of the first day, end of the last.
func (a *app) bounds(r dateRange) (string, string) {
	from, to := r.from, r.to
	if from == "" {
		from = a.now().Format("2006-01-02")
	}
	if to == "" {
		to = from
	}
	return gpsdozor.FormatDateString(from, false), gpsdozor.FormatDateString(to, true)
}

func (a *app) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List vehicle groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.call(cmd, "groups", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.Groups(ctx)
			})
		},
	}
}

func (a *app) vehiclesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles GROUP",
		Short: "List vehicles in a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "vehicles", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.Vehicles(ctx, args[0])
			})
		},
	}
}

func (a *app) vehicleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vehicle CODE",
		Short: "Show vehicle detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "vehicle", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.Vehicle(ctx, args[0])
			})
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var r dateRange
	cmd := &cobra.Command{
		Use:   "history CODE...",
		Short: "Position history of one or more vehicles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := a.bounds(r)
			return a.call(cmd, "history", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.History(ctx, args, from, to)
			})
		},
	}
	addRangeFlags(cmd, &r)
	return cmd
}

func (a *app) tripsCmd() *cobra.Command {
	var r dateRange
	cmd := &cobra.Command{
		Use:   "trips CODE",
		Short: "Trip log of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := a.bounds(r)
			return a.call(cmd, "trips", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.Trips(ctx, args[0], from, to)
			})
		},
	}
	addRangeFlags(cmd, &r)
	return cmd
}

func (a *app) sensorsCmd() *cobra.Command {
	var r dateRange
	cmd := &cobra.Command{
		Use:   "sensors CODE SENSOR...",
		Short: "Sensor time series of a vehicle (see sensor-types)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := a.bounds(r)
			sensors := make([]gpsdozor.SensorType, 0, len(args)-1)
			for _, name := range args[1:] {
				sensors = append(sensors, gpsdozor.SensorType(name))
			}
			return a.call(cmd, "sensors", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.Sensors(ctx, args[0], gpsdozor.SensorList(sensors...), from, to)
			})
		},
	}
	addRangeFlags(cmd, &r)
	return cmd
}

func (a *app) sensorTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sensor-types",
		Short: "List documented sensor types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, s := range gpsdozor.KnownSensors() {
				if _, err := fmt.Fprintln(out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) ecoDrivingCmd() *cobra.Command {
	var r dateRange
	cmd := &cobra.Command{
		Use:   "eco-driving CODE",
		Short: "Eco-driving events of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := a.bounds(r)
			return a.call(cmd, "eco-driving", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.EcoDrivingEvents(ctx, args[0], from, to)
			})
		},
	}
	addRangeFlags(cmd, &r)
	return cmd
}

func (a *app) engineStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engine-state CODE",
		Short: "Engine relay state of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "engine-state", func(ctx context.Context) (gpsdozor.Payload, error) {
				return a.api.EngineRelayState(ctx, args[0])
			})
		},
	}
}
