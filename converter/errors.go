package converter

import (
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
)

// ErrUnexpectedRouteIDFormat is returned for a route whose short name is not
// a route number.
var ErrUnexpectedRouteIDFormat = errors.New("unexpected route id format")

type RouteIDFormatError struct {
	Route gtfs.RawRoute
}

func (e *RouteIDFormatError) Error() string {
	return fmt.Sprintf("unexpected route ID %q for route {id=%q long=%q}", e.Route.ShortName, e.Route.ID, e.Route.LongName)
}

func (e *RouteIDFormatError) Unwrap() error { return ErrUnexpectedRouteIDFormat }
