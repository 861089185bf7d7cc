package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/tzgo/zoneinfo/tzdb"
)

// source picks the zone database selected by the --zip flag.
func source() tzdb.Source {
	if zipFlag != "" {
		return &tzdb.ZipDB{Path: zipFlag}
	}
	return tzdb.DefaultDB
}

// loadInput reads arg as a file path, falling back to a zone lookup
// in the selected database when no such file exists.
func loadInput(arg string) ([]byte, error) {
	b, err := os.ReadFile(arg)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return source().LoadZone(arg)
}
