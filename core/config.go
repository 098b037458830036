package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Window WindowConfig `mapstructure:"window" toml:"window"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
	Render RenderConfig `mapstructure:"render" toml:"render"`
	Assets AssetConfig  `mapstructure:"assets" toml:"assets"`
	Scene  SceneConfig  `mapstructure:"scene" toml:"scene"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

type RenderConfig struct {
	Shadows    bool    `mapstructure:"shadows" toml:"shadows"`
	ShadowSize int     `mapstructure:"shadow_size" toml:"shadow_size"`
	ShadowFar  float32 `mapstructure:"shadow_far" toml:"shadow_far"`
	PiP        bool    `mapstructure:"pip" toml:"pip"`
	Outline    bool    `mapstructure:"outline" toml:"outline"`
	Filter     string  `mapstructure:"filter" toml:"filter"`
	Near       float32 `mapstructure:"near" toml:"near"`
	Far        float32 `mapstructure:"far" toml:"far"`
}

type AssetConfig struct {
	Dir          string `mapstructure:"dir" toml:"dir"`
	ShaderDir    string `mapstructure:"shader_dir" toml:"shader_dir"`
	WatchShaders bool   `mapstructure:"watch_shaders" toml:"watch_shaders"`
}

type SceneConfig struct {
	Particles int    `mapstructure:"particles" toml:"particles"`
	Asteroids int    `mapstructure:"asteroids" toml:"asteroids"`
	StarFile  string `mapstructure:"star_file" toml:"star_file"`
	MaxStars  int    `mapstructure:"max_stars" toml:"max_stars"`
	Seed      uint64 `mapstructure:"seed" toml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Log:    LogConfig{Level: "info"},
		Render: RenderConfig{
			Shadows:    true,
			ShadowSize: 1024,
			ShadowFar:  100,
			PiP:        true,
			Outline:    true,
			Filter:     "none",
			Near:       0.1,
			Far:        10000,
		},
		Assets: AssetConfig{Dir: "assets"},
		Scene: SceneConfig{
			Particles: 500,
			Asteroids: 400,
			StarFile:  "assets/stars.txt",
			Seed:      42,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.vsync", d.Window.VSync)

	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("render.shadows", d.Render.Shadows)
	v.SetDefault("render.shadow_size", d.Render.ShadowSize)
	v.SetDefault("render.shadow_far", d.Render.ShadowFar)
	v.SetDefault("render.pip", d.Render.PiP)
	v.SetDefault("render.outline", d.Render.Outline)
	v.SetDefault("render.filter", d.Render.Filter)
	v.SetDefault("render.near", d.Render.Near)
	v.SetDefault("render.far", d.Render.Far)

	v.SetDefault("assets.dir", d.Assets.Dir)
	v.SetDefault("assets.shader_dir", d.Assets.ShaderDir)
	v.SetDefault("assets.watch_shaders", d.Assets.WatchShaders)

	v.SetDefault("scene.particles", d.Scene.Particles)
	v.SetDefault("scene.asteroids", d.Scene.Asteroids)
	v.SetDefault("scene.star_file", d.Scene.StarFile)
	v.SetDefault("scene.max_stars", d.Scene.MaxStars)
	v.SetDefault("scene.seed", d.Scene.Seed)
}

// ConfigFlags registers the command-line overrides on fs. The flag names
// match the config keys so viper can bind them directly.
func ConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a stargate.toml file")
	fs.String("write-config", "", "write the default config to this path and exit")
	fs.String("log.level", "info", "log level (debug, info, warn, error)")
	fs.Bool("window.vsync", true, "enable vsync")
	fs.Bool("render.shadows", true, "render point-light shadows")
	fs.Bool("render.pip", true, "render the picture-in-picture chase view")
	fs.String("render.filter", "none", "PiP filter: none, grayscale, sharpen, blur, edge")
	fs.String("assets.shader_dir", "", "load shaders from this directory instead of the embedded set")
	fs.Bool("assets.watch_shaders", false, "hot reload shaders from assets.shader_dir")
}

// LoadConfig resolves defaults, an optional TOML file, STARGATE_* environment
// variables and the flags in fs, in increasing priority. A missing config
// file is not an error.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("stargate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetConfigType("toml")
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("stargate")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/stargate")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		LogInfo("config loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// WriteDefaultConfig writes the default settings as TOML.
func WriteDefaultConfig(path string) error {
	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
