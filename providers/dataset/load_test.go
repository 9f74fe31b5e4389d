package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_OverrideLayerWins(t *testing.T) {
	override := fstest.MapFS{
		FileCategories: {Data: []byte(`
event_types:
  sports: [footy]
  music: [gig]
  comedy: [standup]
  theatre: [musical]
  food: [market]
  art: [gallery]
  esports: [lan party]
festival_genres:
  electronic: [edm]
  rock: [indie]
  pop: [chart]
  hip hop: [rap]
  jazz: [blues]
  folk: [country]
`)},
	}

	d, err := Load(Embedded(), override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.EventTypes.Contains("sports", "footy") {
		t.Error("override categories should be used")
	}
	if d.EventTypes.Contains("sports", "nrl") {
		t.Error("embedded categories should be fully replaced")
	}
	if d.Cities.Len() != Default().Cities.Len() {
		t.Error("files missing from the override should come from the embedded layer")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want string
	}{
		{
			name: "festival in unknown city",
			file: FileCities,
			data: "- name: Sydney\n  country: Australia\n",
			want: `unknown city "New York"`,
		},
		{
			name: "duplicate city",
			file: FileCities,
			data: "- name: Sydney\n- name: sydney\n",
			want: `duplicate entry "sydney"`,
		},
		{
			name: "empty show title",
			file: FileShows,
			data: "- title: \"\"\n  year: 2020\n",
			want: "empty name",
		},
		{
			name: "alias to unknown entry",
			file: FileAliases,
			data: "cities:\n  gotham: Gotham City\n",
			want: `alias "gotham" points at unknown entry "Gotham City"`,
		},
		{
			name: "rating out of range",
			file: FileMovies,
			data: "- title: Bad\n  genres: [Drama]\n  rating: 11\n",
			want: "outside 0-10",
		},
		{
			name: "event type not a category",
			file: FileEvents,
			data: "- name: Chess Open\n  city: London\n  type: chess\n",
			want: `type "chess" is not an event_types category`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(Embedded(), fstest.MapFS{tc.file: {Data: []byte(tc.data)}})

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			found := false
			for _, p := range verr.Problems {
				if strings.Contains(p, tc.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a problem containing %q, got %v", tc.want, verr.Problems)
			}
		})
	}
}

func TestLoad_ParseAndMissingFiles(t *testing.T) {
	_, err := Load(Embedded(), fstest.MapFS{FileCities: {Data: []byte("- name: [unclosed")}})
	if err == nil || !strings.Contains(err.Error(), "parse cities.yaml") {
		t.Errorf("expected parse error, got %v", err)
	}

	_, err = Load(fstest.MapFS{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist for an empty layer, got %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error with no layers")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	d, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("empty override dir should load embedded data: %v", err)
	}
	if d.Source != dir {
		t.Errorf("expected source %q, got %q", dir, d.Source)
	}

	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(file); err == nil {
		t.Error("expected error when the path is a file")
	}
}

func TestIsDataFile(t *testing.T) {
	for path, want := range map[string]bool{
		"/tmp/data/cities.yaml": true,
		"aliases.yaml":          true,
		`C:\data\movies.yaml`:   true,
		"/tmp/data/cities.yml":  false,
		"/tmp/data/.cities.swp": false,
	} {
		if got := IsDataFile(path); got != want {
			t.Errorf("IsDataFile(%q) = %v, want %v", path, got, want)
		}
	}
}
