package dataset

// City is a place festivals and events can be searched in.
type City struct {
	Name     string `yaml:"name" json:"name"`
	Country  string `yaml:"country" json:"country"`
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"`
}

type Festival struct {
	Name   string   `yaml:"name" json:"name"`
	City   string   `yaml:"city" json:"city"`
	Month  string   `yaml:"month" json:"month"`
	Genres []string `yaml:"genres" json:"genres"`
	Lineup []string `yaml:"lineup" json:"lineup"`
}

// Event is a one-off happening in a city. Type is one of the event_types
// categories.
type Event struct {
	Name        string `yaml:"name" json:"name"`
	City        string `yaml:"city" json:"city"`
	Type        string `yaml:"type" json:"type"`
	Venue       string `yaml:"venue" json:"venue"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Show is a streaming series. Synopsis is HTML.
type Show struct {
	Title    string   `yaml:"title" json:"title"`
	Year     int      `yaml:"year" json:"year"`
	Services []string `yaml:"services" json:"services"`
	Genres   []string `yaml:"genres" json:"genres"`
	Synopsis string   `yaml:"synopsis" json:"synopsis"`
}

// Country carries ISO 3166-1 codes, which are also accepted as aliases.
type Country struct {
	Name      string   `yaml:"name" json:"name"`
	Alpha2    string   `yaml:"alpha2" json:"alpha2"`
	Alpha3    string   `yaml:"alpha3" json:"alpha3"`
	Capital   string   `yaml:"capital" json:"capital"`
	Currency  string   `yaml:"currency" json:"currency"`
	Languages []string `yaml:"languages" json:"languages"`
	Region    string   `yaml:"region" json:"region"`
}

type Movie struct {
	Title    string   `yaml:"title" json:"title"`
	Year     int      `yaml:"year" json:"year"`
	Genres   []string `yaml:"genres" json:"genres"`
	Rating   float64  `yaml:"rating" json:"rating"`
	Director string   `yaml:"director" json:"director"`
}

// aliasFile mirrors aliases.yaml.
type aliasFile struct {
	Cities    map[string]string `yaml:"cities"`
	Countries map[string]string `yaml:"countries"`
	Genres    map[string]string `yaml:"genres"`
	Shows     map[string]string `yaml:"shows"`
}

// categoryFile mirrors categories.yaml.
type categoryFile struct {
	EventTypes     map[string][]string `yaml:"event_types"`
	FestivalGenres map[string][]string `yaml:"festival_genres"`
}

// raw is every file decoded but not yet cross-checked.
type raw struct {
	cities     []City
	festivals  []Festival
	events     []Event
	shows      []Show
	countries  []Country
	movies     []Movie
	aliases    aliasFile
	categories categoryFile
}
