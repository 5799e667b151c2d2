// Package gpsdozor is a thin client for the GPS Dozor fleet-tracking API.
//
// Every accessor issues a single authenticated GET below BasePath and returns
// the response body as an opaque JSON Payload. Nothing is cached, retried or
// reshaped: non-2xx responses surface as *RequestError, transport and JSON
// decode failures are returned exactly as the underlying layer reports them.
//
// Requests carry Authorization and Content-Type: application/json. The resty
// transport also derives Accept: application/json from the JSON content type;
// the service ignores it.
//
// Path segments and query values are interpolated verbatim. Callers that pass
// identifiers or dates containing reserved URL characters are responsible for
// escaping them.
package gpsdozor
