package domain

// Config represents the minimal plugin configuration loaded from nataly.yaml.
type Config struct {
	Masking  MaskingConfig
	Defaults DefaultsConfig
	Paths    PathsConfig
	Engine   EngineConfig
}

type MaskingConfig struct {
	Enabled bool
}

type DefaultsConfig struct {
	HouseSystem HouseSystem
	Format      OutputFormat
}

type PathsConfig struct {
	RunsDir string
	EpheDir string // directory name under the plugin root
}

type EngineConfig struct {
	Binary         string
	TimeoutSeconds int
}

// DefaultConfig provides sane defaults if nataly.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Masking: MaskingConfig{Enabled: false},
		Defaults: DefaultsConfig{
			HouseSystem: HouseSystemPlacidus,
			Format:      FormatText,
		},
		Paths: PathsConfig{
			RunsDir: "runs",
			EpheDir: "ephe",
		},
		Engine: EngineConfig{
			Binary:         "nataly-engine",
			TimeoutSeconds: 60,
		},
	}
}
