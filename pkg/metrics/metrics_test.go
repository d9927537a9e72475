package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shashiranjanraj/geoinspect/pkg/metrics"
)

func TestWriteTextfile(t *testing.T) {
	metrics.ObserveInspect("shapefile", time.Now(), nil)
	metrics.ObserveInspect("shapefile", time.Now(), errors.New("boom"))
	metrics.SRIDLookups.WithLabelValues("builtin").Inc()

	path := filepath.Join(t.TempDir(), "geoinspect.prom")
	if err := metrics.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`geoinspect_inspections_total{driver="shapefile",status="ok"} 1`,
		`geoinspect_inspections_total{driver="shapefile",status="error"} 1`,
		`geoinspect_srid_lookups_total{source="builtin"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q\n%s", want, out)
		}
	}
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	if err := metrics.WriteTextfile(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
