package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packing settings applied to new runs
	DefaultGrowthStep float64 `json:"default_growth_step" toml:"default_growth_step"`
	DefaultMaxRadius  float64 `json:"default_max_radius" toml:"default_max_radius"`

	// Output preferences
	Background    string `json:"background" toml:"background"`         // Canvas color as #rrggbb
	DefaultOutput string `json:"default_output" toml:"default_output"` // Composite path when --out is not given
	ExportPDF     bool   `json:"export_pdf" toml:"export_pdf"`         // Write a PDF layout sheet next to the composite
	ExportLabels  bool   `json:"export_labels" toml:"export_labels"`   // Write a QR label sheet next to the composite

	RecentLayouts []string `json:"recent_layouts" toml:"recent_layouts"`
}

// maxRecentLayouts caps the RecentLayouts list.
const maxRecentLayouts = 10

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultGrowthStep: defaults.GrowthStep,
		DefaultMaxRadius:  defaults.MaxRadius,
		Background:        "#000000",
		DefaultOutput:     "flagring.png",
		ExportPDF:         false,
		ExportLabels:      false,
		RecentLayouts:     []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	if c.DefaultGrowthStep > 0 {
		s.GrowthStep = c.DefaultGrowthStep
	}
	s.MaxRadius = c.DefaultMaxRadius
}

// AddRecentLayout records path as the most recent layout, dropping duplicates
// and trimming the list to its maximum length.
func (c *AppConfig) AddRecentLayout(path string) {
	recent := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentLayouts {
		recent = recent[:maxRecentLayouts]
	}
	c.RecentLayouts = recent
}
