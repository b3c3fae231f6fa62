package config

// Config is the root application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Reference ReferenceConfig `yaml:"reference"`
	Limits    LimitsConfig    `yaml:"limits"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"GDR_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"GDR_LOG_FORMAT" env-default:"console"`
}

// StoreConfig holds the roster database location.
type StoreConfig struct {
	Path string `yaml:"path" env:"GDR_STORE_PATH" env-default:"./data/roster.db"`
}

// ReferenceConfig points at the static rules dataset. Dir holds exported
// YAML tables, Catalogues a directory of BattleScribe .cat files; both may
// be set and are merged, Dir first. VocabularyFile overrides the built-in
// categorization phrase tables.
type ReferenceConfig struct {
	Dir            string `yaml:"dir"             env:"GDR_REFERENCE_DIR"`
	Catalogues     string `yaml:"catalogues"      env:"GDR_REFERENCE_CATALOGUES"`
	VocabularyFile string `yaml:"vocabulary_file" env:"GDR_VOCABULARY_FILE"`
}

// LimitsConfig bounds the work done per import.
type LimitsConfig struct {
	MaxInputBytes int64 `yaml:"max_input_bytes" env:"GDR_MAX_INPUT_BYTES" env-default:"20971520"`
	MaxDepth      int   `yaml:"max_depth"       env:"GDR_MAX_DEPTH"       env-default:"64"`
}
