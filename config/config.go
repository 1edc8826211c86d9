// Package config resolves the catchment model's run-time parameters from three sources, in increasing priority:
// defaults, the line-oriented parameter file (package paramfile), and
// command-line flags/environment variables layered on top via Viper —
// mirroring inmaputil's Cfg/InitializeConfig/PersistentPreRunE wiring,
// narrowed to the handful of keys this core actually reads.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dvalters/catchmentfp/cerrors"
	"github.com/dvalters/catchmentfp/grid"
	"github.com/dvalters/catchmentfp/internal/hash"
	"github.com/dvalters/catchmentfp/paramfile"
)

// Cfg holds the resolved configuration for one invocation of the model.
type Cfg struct {
	*viper.Viper

	DEMPath    string
	Iterations int
}

// option describes one recognized parameter-file key and its Viper
// default, mirroring the options table inmaputil/cmd.go builds for its
// own (far larger) flag set.
var options = []struct {
	name       string
	usage      string
	defaultVal interface{}
}{
	{"read_path", "directory containing the DEM file", "."},
	{"read_fname", "DEM file base name, without extension", ""},
	{"dem_read_extension", "DEM file extension", "asc"},
	{"no_of_iterations", "number of steps to run", 100},
	{"hflow_threshold", "minimum hflow gating flux", 0.001},
	{"water_depth_erosion_threshold", "edge-outflow clamp value", 0.5},
	{"slope_on_edge_cell", "edgeslope used on boundary flux calculations", 0.001},
	{"courant_number", "CFL coefficient", 0.7},
	{"froude_num_limit", "Froude-number velocity cap", 0.8},
	{"mannings_n", "Manning's roughness coefficient", 0.03},
}

// New builds a Viper instance seeded with every recognized key's default,
// with the INMAP-style environment-variable prefix CATCHMENT_ so a value
// like courant_number can be overridden by CATCHMENT_COURANT_NUMBER.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CATCHMENT")
	v.AutomaticEnv()
	for _, o := range options {
		v.SetDefault(o.name, o.defaultVal)
	}
	return v
}

// BindFlags registers one pflag per recognized option on fs and binds it
// into v, so command-line flags take priority over the parameter file and
// its defaults.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for _, o := range options {
		switch d := o.defaultVal.(type) {
		case string:
			fs.String(o.name, d, o.usage)
		case int:
			fs.Int(o.name, d, o.usage)
		case float64:
			fs.Float64(o.name, d, o.usage)
		}
		v.BindPFlag(o.name, fs.Lookup(o.name))
	}
}

// LoadParamFile reads the line-oriented parameter file at path and merges
// its values into v at the parameter-file priority tier (above defaults,
// below flags/environment). Returns a *cerrors.ConfigError on any read
// failure.
func LoadParamFile(v *viper.Viper, path string) error {
	pf, err := paramfile.Load(path)
	if err != nil {
		return err
	}
	for k, val := range pf.All() {
		v.SetDefault(k, val)
	}
	if v.GetString("read_fname") == "" {
		return &cerrors.ConfigError{Path: path, Err: fmt.Errorf("required key read_fname is missing")}
	}
	return nil
}

// Resolve reads every bound value out of v into a Cfg and a grid.Params,
// computing the DEM's full path from read_path/read_fname/dem_read_extension.
func Resolve(v *viper.Viper) (Cfg, grid.Params) {
	cfg := Cfg{
		DEMPath:    filepath.Join(v.GetString("read_path"), v.GetString("read_fname")+"."+v.GetString("dem_read_extension")),
		Iterations: v.GetInt("no_of_iterations"),
		Viper:      v,
	}
	p := grid.Params{
		WaterDepthErosionThreshold: v.GetFloat64("water_depth_erosion_threshold"),
		EdgeSlope:                  v.GetFloat64("slope_on_edge_cell"),
		HflowThreshold:             v.GetFloat64("hflow_threshold"),
		Mannings:                   v.GetFloat64("mannings_n"),
		FroudeLimit:                v.GetFloat64("froude_num_limit"),
		CourantNumber:              v.GetFloat64("courant_number"),
	}
	return cfg, p
}

// Fingerprint returns a short deterministic key for p, logged alongside a
// run's results so two runs can be compared for identical configuration
// without diffing every field by hand.
func Fingerprint(p grid.Params) string {
	return hash.Hash(p)
}

// CheckDEMPath reports whether the resolved DEM path exists, wrapped as a
// *cerrors.DEMLoadError if not — run before the full DEM parse so a
// missing file is reported with a clear message rather than a generic
// open error.
func CheckDEMPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &cerrors.DEMLoadError{Path: path, Err: err}
	}
	return nil
}
