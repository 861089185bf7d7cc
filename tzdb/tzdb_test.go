package tzdb

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCheckName(t *testing.T) {
	for _, name := range []string{"UTC", "Asia/Tokyo", "America/Argentina/Ushuaia"} {
		if err := checkName(name); err != nil {
			t.Errorf("checkName(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"", ".", "..", "../etc/passwd", "Asia/", "/UTC", "Asia//Tokyo", "Asia/./Tokyo"} {
		if err := checkName(name); err == nil {
			t.Errorf("checkName(%q) = nil, want error", name)
		}
	}
}

// writeTree lays out zone files under dir. Contents do not need to be
// valid zoneinfo; this package never decodes them.
func writeTree(t *testing.T, dir string, zones map[string][]byte) {
	t.Helper()
	for name, b := range zones {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, b, 0o644))
	}
}

func TestDirDB(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{
		"UTC":        []byte("utc-bytes"),
		"Asia/Tokyo": []byte("tokyo-bytes"),
		"zone.tab":   []byte("not a zone"),
	})
	db := &DirDB{Dirs: []string{dir}}

	b, err := db.LoadZone("Asia/Tokyo")
	require.NoError(t, err)
	require.Equal(t, []byte("tokyo-bytes"), b)

	_, err = db.LoadZone("Asia/Osaka")
	require.ErrorIs(t, err, ErrZoneNotFound)

	_, err = db.LoadZone("../Tokyo")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrZoneNotFound)

	zones, err := db.Zones()
	require.NoError(t, err)
	if diff := cmp.Diff(zones, []string{"Asia/Tokyo", "UTC"}); diff != "" {
		t.Errorf("Zones() mismatch (-got +want):\n%s", diff)
	}
}

func TestDirDB_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTree(t, first, map[string][]byte{"UTC": []byte("first")})
	writeTree(t, second, map[string][]byte{
		"UTC": []byte("second"),
		"GMT": []byte("second-only"),
	})
	db := &DirDB{Dirs: []string{first, second}}

	// The first directory containing the zone wins.
	b, err := db.LoadZone("UTC")
	require.NoError(t, err)
	require.Equal(t, []byte("first"), b)

	// Later directories still serve zones the first one lacks, and
	// listing is the union over all of them.
	b, err = db.LoadZone("GMT")
	require.NoError(t, err)
	require.Equal(t, []byte("second-only"), b)

	zones, err := db.Zones()
	require.NoError(t, err)
	if diff := cmp.Diff(zones, []string{"GMT", "UTC"}); diff != "" {
		t.Errorf("Zones() mismatch (-got +want):\n%s", diff)
	}
}

func TestDirDB_TZDIR(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{"Test/Zone": []byte("tzdir")})
	t.Setenv("TZDIR", dir)

	b, err := (&DirDB{}).LoadZone("Test/Zone")
	require.NoError(t, err)
	require.Equal(t, []byte("tzdir"), b)
}

func writeArchive(t *testing.T, zones map[string][]byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "zoneinfo.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, b := range zones {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(b)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestZipDB(t *testing.T) {
	db := &ZipDB{Path: writeArchive(t, map[string][]byte{
		"UTC":           []byte("utc-bytes"),
		"Europe/Berlin": []byte("berlin-bytes"),
		"zone1970.tab":  []byte("not a zone"),
	})}

	b, err := db.LoadZone("Europe/Berlin")
	require.NoError(t, err)
	require.Equal(t, []byte("berlin-bytes"), b)

	_, err = db.LoadZone("Europe/Paris")
	require.ErrorIs(t, err, ErrZoneNotFound)

	zones, err := db.Zones()
	require.NoError(t, err)
	if diff := cmp.Diff(zones, []string{"Europe/Berlin", "UTC"}); diff != "" {
		t.Errorf("Zones() mismatch (-got +want):\n%s", diff)
	}
}

func TestZipDB_MissingArchive(t *testing.T) {
	db := &ZipDB{Path: filepath.Join(t.TempDir(), "nope.zip")}
	_, err := db.LoadZone("UTC")
	require.Error(t, err)
	_, err = db.Zones()
	require.Error(t, err)
}
