package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File names read by Load.
const (
	FileCities     = "cities.yaml"
	FileFestivals  = "festivals.yaml"
	FileEvents     = "events.yaml"
	FileShows      = "shows.yaml"
	FileCountries  = "countries.yaml"
	FileMovies     = "movies.yaml"
	FileAliases    = "aliases.yaml"
	FileCategories = "categories.yaml"
)

// Files lists every file name Load reads, in load order.
var Files = []string{
	FileCities, FileFestivals, FileEvents, FileShows,
	FileCountries, FileMovies, FileAliases, FileCategories,
}

//go:embed data/*.yaml
var embedded embed.FS

// Embedded returns the built-in sample data as a file system rooted at the
// YAML files.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the embedded sample data. It panics if the embedded files are
// invalid, which can only happen through a broken build.
func Default() *Dataset {
	d, err := Load(Embedded())
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded data is invalid: %v", err))
	}
	d.Source = "embedded"
	return d
}

// LoadDir loads the embedded data overridden by the YAML files found in dir.
// Files missing from dir keep their embedded content.
func LoadDir(dir string) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset directory: %s is not a directory", dir)
	}

	d, err := Load(Embedded(), os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	d.Source = dir
	return d, nil
}

// Load reads every file in Files from layers. For each file the last layer
// that has it wins; a file missing from every layer is an error. The result is
// validated before it is returned.
func Load(layers ...fs.FS) (*Dataset, error) {
	if len(layers) == 0 {
		return nil, errors.New("dataset: no file system to load from")
	}

	var r raw
	targets := map[string]any{
		FileCities:     &r.cities,
		FileFestivals:  &r.festivals,
		FileEvents:     &r.events,
		FileShows:      &r.shows,
		FileCountries:  &r.countries,
		FileMovies:     &r.movies,
		FileAliases:    &r.aliases,
		FileCategories: &r.categories,
	}

	for _, name := range Files {
		data, err := readLayered(layers, name)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, targets[name]); err != nil {
			return nil, fmt.Errorf("dataset: parse %s: %w", name, err)
		}
	}

	return build(r)
}

func readLayered(layers []fs.FS, name string) ([]byte, error) {
	for i := len(layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(layers[i], name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dataset: read %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("dataset: %s: %w", name, fs.ErrNotExist)
}

// IsDataFile reports whether path names one of the files Load reads.
func IsDataFile(path string) bool {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	for _, name := range Files {
		if base == name {
			return true
		}
	}
	return false
}
