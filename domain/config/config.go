package config

// Config represents the structure of config.yml used by the tool.
// Every field can be overridden from the environment; flags override both.
type Config struct {
	Data struct {
		Path     string `yaml:"path" env:"ECOMMERCE_DATA_PATH" validate:"required"`
		Timezone string `yaml:"timezone" env:"ECOMMERCE_TIMEZONE" validate:"required"`
	} `yaml:"data"`
	Web struct {
		Addr  string `yaml:"addr" env:"ECOMMERCE_WEB_ADDR" validate:"required"`
		UIDir string `yaml:"ui_dir" env:"ECOMMERCE_WEB_UI_DIR"`
	} `yaml:"web"`
	Dashboard Dashboard `yaml:"dashboard"`
	Log       struct {
		Level string `yaml:"level" env:"ECOMMERCE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	} `yaml:"log"`
}

type Dashboard struct {
	TopN           int     `yaml:"top_n" env:"ECOMMERCE_TOP_N" validate:"min=1"`
	Currency       string  `yaml:"currency" env:"ECOMMERCE_CURRENCY" validate:"required,len=3"`
	Locale         string  `yaml:"locale" env:"ECOMMERCE_LOCALE" validate:"required"`
	GeoCellDegrees float64 `yaml:"geo_cell_degrees" env:"ECOMMERCE_GEO_CELL_DEGREES" validate:"gt=0"`
	Parallel       bool    `yaml:"parallel" env:"ECOMMERCE_PARALLEL"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.Data.Path = "main_data.csv"
	c.Data.Timezone = "UTC"
	c.Web.Addr = ":8080"
	c.Web.UIDir = "./ui/dist"
	c.Dashboard = Dashboard{
		TopN:           5,
		Currency:       "BRL",
		Locale:         "pt-BR",
		GeoCellDegrees: 1,
		Parallel:       true,
	}
	c.Log.Level = "info"
	return c
}
