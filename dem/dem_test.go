package dem

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempDEM(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.asc")
	header := "ncols 3\nnrows 2\nxllcorner 0.0\nyllcorner 0.0\ncellsize 10.0\nNODATA_value -9999\n"
	if err := os.WriteFile(path, []byte(header+body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadValidDEM(t *testing.T) {
	path := writeTempDEM(t, "10 9 8\n11 -9999 7\n")
	g, hdr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if hdr.IMax != 2 || hdr.JMax != 3 {
		t.Errorf("header dims = (%d,%d), want (2,3)", hdr.IMax, hdr.JMax)
	}
	if hdr.CellSize != 10.0 {
		t.Errorf("CellSize = %v, want 10.0", hdr.CellSize)
	}
	if hdr.NoDataValue != -9999 {
		t.Errorf("NoDataValue = %v, want -9999", hdr.NoDataValue)
	}
	if g.At(1, 1).Elevation != -9999 {
		t.Errorf("nodata cell elevation = %v, want -9999", g.At(1, 1).Elevation)
	}
	if g.At(0, 0).Elevation != 10 {
		t.Errorf("first cell elevation = %v, want 10", g.At(0, 0).Elevation)
	}
}

func TestHeaderExtent(t *testing.T) {
	hdr := Header{IMax: 2, JMax: 3, XLLCorner: 100, YLLCorner: 200, CellSize: 10}
	ext := hdr.Extent()
	if ext.Min.X != 100 || ext.Min.Y != 200 {
		t.Errorf("Extent().Min = (%v,%v), want (100,200)", ext.Min.X, ext.Min.Y)
	}
	if ext.Max.X != 130 || ext.Max.Y != 220 {
		t.Errorf("Extent().Max = (%v,%v), want (130,220)", ext.Max.X, ext.Max.Y)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.asc"))
	if err == nil {
		t.Fatal("Load() = nil error for a nonexistent path, want a DEMLoadError")
	}
}

func TestLoadTruncatedBody(t *testing.T) {
	path := writeTempDEM(t, "10 9 8\n11 -9999\n") // missing one value
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("Load() = nil error for a truncated body, want a DEMLoadError")
	}
}

func TestLoadMalformedHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.asc")
	if err := os.WriteFile(path, []byte("ncols notanumber\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("Load() = nil error for a malformed header, want a DEMLoadError")
	}
}
