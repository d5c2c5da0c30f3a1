package config

// DefaultConfig returns a Config with the values the original widgets shipped with.
// Zero durations in Comments defer to the selected policy.
func DefaultConfig() *Config {
	return &Config{
		Orbit: OrbitConfig{
			Width:            WindowWidth,
			Height:           WindowHeight,
			InitialElectrons: InitialElectrons,
			Batch:            FineStructure,
			Floor:            FineStructure,
			Perspective:      InitialPerspective,
			MinSpeed:         MinElectronSpeed,
			MaxSpeed:         MaxElectronSpeed,
			ElectronSize:     ElectronSize,
			Background:       "#0b0d14",
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.25,
		},
		Comments: CommentsConfig{
			APIURL:             DefaultAPIURL,
			Policy:             PolicyStrict,
			NavigationDebounce: NavigationDebounce,
			RequestTimeout:     RequestTimeout,
			DateLayout:         DateLayout,
		},
		Server: ServerConfig{
			Addr: ":8137",
		},
	}
}
