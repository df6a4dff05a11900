package common

import (
	"time"
)

// Progress reporter names accepted by Configuration.Progress
const (
	ProgressLog     = "log"
	ProgressBar     = "bar"
	ProgressSpinner = "spinner"
)

// Configuration holds the scraper configuration
type Configuration struct {
	StartURL    string `yaml:"start_url"`
	ListingFile string `yaml:"listing_file"`
	OutputFile  string `yaml:"output_file"`
	Verbose     bool   `yaml:"verbose"`

	// Link collection
	DetailPattern  string `yaml:"detail_pattern"`
	MinLabelLength int    `yaml:"min_label_length"`

	// List expansion
	ExpandVocabulary []string      `yaml:"expand_vocabulary"`
	ExpandTimeout    time.Duration `yaml:"expand_timeout"`
	MaxActivations   int           `yaml:"max_activations"`

	// Title parsing and merge
	BoilerplateTokens  []string `yaml:"boilerplate_tokens"`
	TitleSeparator     string   `yaml:"title_separator"`
	MinPlausibleLength int      `yaml:"min_plausible_length"`

	// Pacing
	PauseMin             time.Duration `yaml:"pause_min"`
	PauseMax             time.Duration `yaml:"pause_max"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	Retries              int           `yaml:"retries"`
	MaxRequestsPerSecond float64       `yaml:"max_requests_per_second"`
	UserAgent            string        `yaml:"user_agent"`

	// Browser
	Headless        bool `yaml:"headless"`
	FetchViaBrowser bool `yaml:"fetch_via_browser"`

	// Detail page layout
	InstitutionSelector string `yaml:"institution_selector"`
	CitySelector        string `yaml:"city_selector"`
	CountrySuffix       string `yaml:"country_suffix"`
	SectionMaxLength    int    `yaml:"section_max_length"`

	// Export
	ExtendedColumns bool `yaml:"extended_columns"`
	PresenceColumns bool `yaml:"presence_columns"`

	Progress string `yaml:"progress"`
}

// DefaultConfiguration returns the settings used when no config file overrides them
func DefaultConfiguration() *Configuration {
	return &Configuration{
		OutputFile:     "Programme_Shortlist.csv",
		DetailPattern:  "/detail/",
		MinLabelLength: 6,
		ExpandVocabulary: []string{
			"more", "show", "load", "mehr", "anzeigen",
		},
		ExpandTimeout: 10 * time.Second,
		BoilerplateTokens: []string{
			"Master's degree", "Master’s degree",
			"Bachelor's degree", "Bachelor’s degree",
			"PhD / Doctorate", "Prep course", "Language course", "Short course",
		},
		TitleSeparator:      "•",
		MinPlausibleLength:  3,
		PauseMin:            1500 * time.Millisecond,
		PauseMax:            1500 * time.Millisecond,
		RequestTimeout:      30 * time.Second,
		UserAgent:           "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Headless:            true,
		InstitutionSelector: ".c-detail-header__institution",
		CitySelector:        ".c-detail-header__city",
		CountrySuffix:       "Germany",
		SectionMaxLength:    300,
		ExtendedColumns:     true,
		Progress:            ProgressLog,
	}
}
