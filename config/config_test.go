package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSeedsDefaults(t *testing.T) {
	v := New()
	if v.GetFloat64("courant_number") != 0.7 {
		t.Errorf("default courant_number = %v, want 0.7", v.GetFloat64("courant_number"))
	}
	if v.GetInt("no_of_iterations") != 100 {
		t.Errorf("default no_of_iterations = %v, want 100", v.GetInt("no_of_iterations"))
	}
}

func TestLoadParamFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	os.WriteFile(path, []byte("read_fname catchment\ncourant_number 0.5\n"), 0o644)

	v := New()
	if err := LoadParamFile(v, path); err != nil {
		t.Fatalf("LoadParamFile: %v", err)
	}
	if v.GetString("read_fname") != "catchment" {
		t.Errorf("read_fname = %q, want catchment", v.GetString("read_fname"))
	}
}

func TestLoadParamFileRequiresReadFname(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	os.WriteFile(path, []byte("courant_number 0.5\n"), 0o644)

	v := New()
	if err := LoadParamFile(v, path); err == nil {
		t.Fatal("LoadParamFile() = nil error when read_fname is missing")
	}
}

func TestResolveComputesDEMPath(t *testing.T) {
	v := New()
	v.Set("read_path", "/data")
	v.Set("read_fname", "basin1")
	v.Set("dem_read_extension", "asc")

	cfg, p := Resolve(v)
	if cfg.DEMPath != filepath.Join("/data", "basin1.asc") {
		t.Errorf("DEMPath = %q, want /data/basin1.asc", cfg.DEMPath)
	}
	if p.CourantNumber != 0.7 {
		t.Errorf("resolved CourantNumber = %v, want 0.7", p.CourantNumber)
	}
}

func TestCheckDEMPathMissing(t *testing.T) {
	if err := CheckDEMPath(filepath.Join(t.TempDir(), "nope.asc")); err == nil {
		t.Fatal("CheckDEMPath() = nil for a nonexistent path")
	}
}

func TestFingerprintIsDeterministicAndSensitive(t *testing.T) {
	v := New()
	v.Set("read_path", "/data")
	v.Set("read_fname", "basin1")
	_, p := Resolve(v)

	if Fingerprint(p) != Fingerprint(p) {
		t.Error("Fingerprint() should be deterministic for identical Params")
	}

	p2 := p
	p2.CourantNumber += 0.1
	if Fingerprint(p) == Fingerprint(p2) {
		t.Error("Fingerprint() should differ when Params differ")
	}
}
