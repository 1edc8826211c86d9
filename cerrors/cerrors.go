// Package cerrors holds the named error kinds that the catchment model's
// initialization path can fail with, plus NumericalInstabilityError, which
// the executor's step loop returns when a cell's depth goes negative. The
// kernel update itself has no failure modes (see package kernel).
package cerrors

import "fmt"

// ConfigError reports an unreadable or malformed parameter file, or a
// required key missing from it.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DEMLoadError reports a missing DEM file, a malformed header, or body
// dimensions inconsistent with the header.
type DEMLoadError struct {
	Path string
	Err  error
}

func (e *DEMLoadError) Error() string {
	return fmt.Sprintf("dem: %s: %v", e.Path, e.Err)
}

func (e *DEMLoadError) Unwrap() error { return e.Err }

// ClosedDomainError reports that every cell along at least one DEM border
// is nodata, so the catchment has no outlet.
type ClosedDomainError struct {
	Border string // "north", "south", "east", or "west"
}

func (e *ClosedDomainError) Error() string {
	return fmt.Sprintf("closed domain: every cell on the %s border is nodata", e.Border)
}

// NumericalInstabilityError is not raised by the core update rule itself —
// the Froude and discharge limiters are the sole defense against
// instability — but callers may surface it if water depth is observed to
// go negative after a step.
type NumericalInstabilityError struct {
	Row, Col   int
	WaterDepth float64
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("numerical instability: cell (%d,%d) has negative water depth %g",
		e.Row, e.Col, e.WaterDepth)
}
