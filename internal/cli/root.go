package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dozor-fleet/gpsdozor-client/internal/logger"
	"github.com/dozor-fleet/gpsdozor-client/pkg/gpsdozor"
)

// FleetAPI is the subset of *gpsdozor.Client the commands call.
type FleetAPI interface {
	Groups(ctx context.Context) (gpsdozor.Payload, error)
	Vehicles(ctx context.Context, groupCode string) (gpsdozor.Payload, error)
	Vehicle(ctx context.Context, vehicleCode string) (gpsdozor.Payload, error)
	History(ctx context.Context, vehicleCodes []string, from, to string) (gpsdozor.Payload, error)
	Trips(ctx context.Context, vehicleCode, from, to string) (gpsdozor.Payload, error)
	Sensors(ctx context.Context, vehicleCode, sensors, from, to string) (gpsdozor.Payload, error)
	EcoDrivingEvents(ctx context.Context, vehicleCode, from, to string) (gpsdozor.Payload, error)
	EngineRelayState(ctx context.Context, vehicleCode string) (gpsdozor.Payload, error)
}

// Deps carries what the command tree needs at runtime.
type Deps struct {
	API FleetAPI
	Log logger.Logger
	// Now supplies the default --from/--to day. Defaults to time.Now.
	Now func() time.Time
}

type app struct {
	api     FleetAPI
	log     logger.Logger
	now     func() time.Time
	compact bool
}

// NewRootCmd builds the gpsdozor command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	a := &app{
		api: deps.API,
		log: logger.Ensure(deps.Log),
		now: deps.Now,
	}
	if a.now == nil {
		a.now = time.Now
	}

	cmd := &cobra.Command{
		Use:           "gpsdozor",
		Short:         "Query the GPS Dozor fleet-tracking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&a.compact, "compact", false, "print payloads without indentation")

	cmd.AddCommand(
		a.groupsCmd(),
		a.vehiclesCmd(),
		a.vehicleCmd(),
		a.historyCmd(),
		a.tripsCmd(),
		a.sensorsCmd(),
		a.sensorTypesCmd(),
		a.ecoDrivingCmd(),
		a.engineStateCmd(),
	)
	return cmd
}

// call runs one API request, logs its outcome and prints the payload.
func (a *app) call(cmd *cobra.Command, name string, fetch func(context.Context) (gpsdozor.Payload, error)) error {
	if a.api == nil {
		return fmt.Errorf("api client is not configured")
	}

	start := time.Now()
	payload, err := fetch(cmd.Context())
	if err != nil {
		fields := map[string]any{
			"command": name,
			"error":   err.Error(),
		}
		if status, ok := gpsdozor.StatusCode(err); ok {
			fields["status"] = status
		}
		a.log.WarnObj("api call failed", "api_call", fields)
		return fmt.Errorf("%s: %w", name, err)
	}

	a.log.DebugObj("api call completed", "api_call", map[string]any{
		"command":    name,
		"bytes":      len(payload),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return writePayload(cmd.OutOrStdout(), payload, a.compact)
}

func writePayload(w io.Writer, payload gpsdozor.Payload, compact bool) error {
	var buf bytes.Buffer
	if compact {
		if err := json.Compact(&buf, payload); err != nil {
			return fmt.Errorf("format payload: %w", err)
		}
	} else if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
