// Package tzdb locates compiled zoneinfo files by zone name.
//
// It is a thin acquisition shell around package tzif: it finds bytes,
// it never decodes them. Zones can come from the platform zoneinfo
// directories (DirDB) or from a zoneinfo.zip-style archive (ZipDB)
// such as the one shipped in $GOROOT/lib/time.
package tzdb

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrZoneNotFound is returned when none of a source's locations
// contain the requested zone.
var ErrZoneNotFound = errors.New("zone not found")

// Source provides compiled zoneinfo bytes by zone name.
type Source interface {
	// LoadZone returns the raw contents of the compiled zoneinfo
	// file for a zone name like "Asia/Tokyo".
	LoadZone(name string) ([]byte, error)

	// Zones lists the available zone names in lexical order.
	Zones() ([]string, error)
}

// platformDirs are the zoneinfo locations tried by a zero DirDB.
// Many systems use /usr/share/zoneinfo, Solaris has
// /usr/share/lib/zoneinfo, IRIX has /usr/lib/locale/TZ and NixOS
// has /etc/zoneinfo.
var platformDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
	"/etc/zoneinfo",
}

// nonZoneFiles are entries of a zoneinfo tree that are not compiled
// zone files and are skipped when listing zones.
var nonZoneFiles = map[string]bool{
	"posixrules":        true,
	"leapseconds":       true,
	"leap-seconds.list": true,
	"tzdata.zi":         true,
	"zone.tab":          true,
	"zone1970.tab":      true,
	"zonenow.tab":       true,
	"iso3166.tab":       true,
	"+VERSION":          true,
	"SECURITY":          true,
	"README":            true,
}

// DefaultDB reads from the platform zoneinfo directories, honoring
// $TZDIR. It is ready to use and backs the top-level LoadZone.
var DefaultDB = &DirDB{}

// LoadZone loads a zone from the platform zoneinfo directories.
func LoadZone(name string) ([]byte, error) {
	return DefaultDB.LoadZone(name)
}

// checkName rejects zone names that are empty or escape the zoneinfo
// tree. Names are slash-separated regardless of platform.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("invalid zone name %q", name)
	}
	for _, part := range strings.Split(name, "/") {
		switch part {
		case "", ".", "..":
			return fmt.Errorf("invalid zone name %q", name)
		}
	}
	return nil
}

// DirDB is a Source reading from zoneinfo directory trees. The zero
// value searches $TZDIR (if set) followed by the platform locations.
type DirDB struct {
	// Dirs overrides the search path. When empty, $TZDIR and the
	// platform locations are used.
	Dirs []string
}

func (db *DirDB) dirs() []string {
	if len(db.Dirs) > 0 {
		return db.Dirs
	}
	var dirs []string
	if tzdir := os.Getenv("TZDIR"); tzdir != "" {
		dirs = append(dirs, tzdir)
	}
	return append(dirs, platformDirs...)
}

// LoadZone returns the contents of the first file named after the
// zone in the search path.
func (db *DirDB) LoadZone(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	for _, dir := range db.dirs() {
		b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, name)
}

// Zones walks every directory in the search path and lists the union
// of the zone files found.
func (db *DirDB) Zones() ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range db.dirs() {
		root := os.DirFS(dir)
		err := fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isZoneFile(p) {
				return nil
			}
			seen[p] = true
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("listing zones in %s: %w", dir, err)
		}
	}
	return sorted(seen), nil
}

// ZipDB is a Source reading from an uncompressed-path zip archive of
// compiled zone files, like $GOROOT/lib/time/zoneinfo.zip.
type ZipDB struct {
	// Path is the location of the archive.
	Path string
}

// LoadZone extracts the named zone file from the archive.
func (db *ZipDB) LoadZone(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	r, err := zip.OpenReader(db.Path)
	if err != nil {
		return nil, fmt.Errorf("opening zone archive: %w", err)
	}
	defer r.Close()
	for _, f := range r.File {
		if path.Clean(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zone %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading zone %s: %w", name, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, name)
}

// Zones lists the zone files in the archive.
func (db *ZipDB) Zones() ([]string, error) {
	r, err := zip.OpenReader(db.Path)
	if err != nil {
		return nil, fmt.Errorf("opening zone archive: %w", err)
	}
	defer r.Close()
	seen := make(map[string]bool)
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		name := path.Clean(f.Name)
		if isZoneFile(name) {
			seen[name] = true
		}
	}
	return sorted(seen), nil
}

func isZoneFile(name string) bool {
	base := path.Base(name)
	if nonZoneFiles[base] || strings.HasPrefix(base, ".") {
		return false
	}
	return true
}

func sorted(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
