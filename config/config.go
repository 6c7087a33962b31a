package config

import (
	"errors"
	"fmt"
	"os"

	"git.fiblab.net/sim/transit/renderer"
	"git.fiblab.net/sim/transit/router"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// 应用配置，命令行中显式给出的参数优先
type AppConfig struct {
	// 服务监听地址
	Listen string `yaml:"listen" validate:"required,hostname_port"`
	// 日志等级
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error fatal panic"`

	// 网络数据：{fspath} 或 {db}.{coll}
	Base     string `yaml:"base"`
	MongoURI string `yaml:"mongo_uri" validate:"omitempty,uri"`
	CacheDir string `yaml:"cache_dir"`

	// 批处理的输入格式
	Format string `yaml:"format" validate:"oneof=json text"`

	// 文档中没有routing_settings/render_settings时的默认值
	Routing router.Settings   `yaml:"routing_settings"`
	Render  renderer.Settings `yaml:"render_settings"`

	// 路径查询结果缓存的容量
	RouteCacheSize int `yaml:"route_cache_size" validate:"gte=1"`
}

func Default() AppConfig {
	return AppConfig{
		Listen:   "localhost:52101",
		LogLevel: "info",
		Format:   "json",
		Routing: router.Settings{
			BusWaitTime: 6,
			BusVelocity: 40,
		},
		Render: renderer.Settings{
			Width:             1200,
			Height:            1200,
			Padding:           50,
			StopRadius:        5,
			LineWidth:         14,
			BusLabelFontSize:  20,
			BusLabelOffset:    renderer.Point{X: 7, Y: 15},
			StopLabelFontSize: 20,
			StopLabelOffset:   renderer.Point{X: 7, Y: -3},
			UnderlayerColor:   renderer.RGBA(255, 255, 255, 0.85),
			UnderlayerWidth:   3,
			ColorPalette: []renderer.Color{
				renderer.NamedColor("green"),
				renderer.RGB(255, 160, 0),
				renderer.NamedColor("red"),
			},
		},
		RouteCacheSize: 4096,
	}
}

// 读取YAML配置文件，未给出的字段使用Default()
// path为空时直接返回默认配置
func Load(path string) (AppConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
