package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/source"
)

// ListSource is one configured fort list.
type ListSource struct {
	Path   string `mapstructure:"path" json:"path"`
	Kind   string `mapstructure:"kind" json:"kind"`
	Format string `mapstructure:"format" json:"format"`
	// Remap applies the configured coordinate remap to this list.
	Remap bool `mapstructure:"remap" json:"remap,omitempty"`
}

// StatusConfig selects where status snapshots come from.
type StatusConfig struct {
	URL       string        `json:"url,omitempty"`
	File      string        `json:"file,omitempty"`
	Timeout   time.Duration `json:"timeout"`
	CacheDir  string        `json:"cacheDir,omitempty"`
	RedisAddr string        `json:"redisAddr,omitempty"`
	RedisPass string        `json:"-"`
	RedisDB   int           `json:"redisDB,omitempty"`
	RedisKey  string        `json:"redisKey,omitempty"`
	Resolved  []string      `json:"resolved"`
	Watch     bool          `json:"watch"`
}

// UIConfig tunes the terminal map, where one pixel is one cell column.
type UIConfig struct {
	TapThreshold float64 `json:"tapThreshold"`
	// MinHitRadius is the smallest pick radius in cells.
	MinHitRadius float64 `json:"minHitRadius"`
	Pinned       bool    `json:"pinned"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file,omitempty"`
}

// Config is the resolved configuration.
type Config struct {
	Regions     string            `json:"regions"`
	Lists       []ListSource      `json:"lists"`
	RegionOrder []string          `json:"regionOrder"`
	Pinned      []string          `json:"pinned,omitempty"`
	Remap       map[int]int       `json:"remap,omitempty"`
	MapURL      string            `json:"mapURL"`
	ActionURL   string            `json:"actionURL"`
	Labels      map[string]string `json:"labels"`
	DefaultKind string            `json:"defaultKind"`
	Status      StatusConfig      `json:"status"`
	UI          UIConfig          `json:"ui"`
	Log         LogConfig         `json:"log"`
	// File is the config file that was read, if any.
	File string `json:"file,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("regions", "regions.txt")
	v.SetDefault("lists", []map[string]any{
		{"path": "cw2.txt", "kind": "A", "format": "tsv"},
		{"path": "em6.txt", "kind": "B", "format": "tsv", "remap": true},
	})
	v.SetDefault("order.regions", []string{"北西", "北", "北東", "西", "中原", "東", "南西", "南", "南東"})
	v.SetDefault("order.pinned", record.DefaultPinned())
	remap := map[string]any{}
	for from, to := range source.LegacyRemap() {
		remap[strconv.Itoa(from)] = to
	}
	v.SetDefault("remap", remap)
	v.SetDefault("urls.map", "https://dam.example.com/map.php")
	v.SetDefault("urls.action", "https://dam.example.com/auto_send_troop/index.php")
	v.SetDefault("labels.a", "E1")
	v.SetDefault("labels.b", "w")
	v.SetDefault("default_kind", "B")
	v.SetDefault("status.file", "fort_status.json")
	v.SetDefault("status.timeout", "5s")
	v.SetDefault("status.redis_key", "fort_status")
	v.SetDefault("status.resolved", []string{"攻略済", "失"})
	v.SetDefault("status.watch", true)
	v.SetDefault("ui.tap_threshold", 2.0)
	v.SetDefault("ui.min_hit_radius", 1.5)
	v.SetDefault("ui.pinned", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads `.fortmap.yaml` from $FORTMAP_CONFIG_PATH or the working
// directory, overlaid with FORTMAP_* environment variables. A `.env` file in
// the working directory is loaded first. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".fortmap") // .yaml is implicit
	v.SetEnvPrefix("FORTMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("FORTMAP_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var lists []ListSource
	if err := v.UnmarshalKey("lists", &lists); err != nil {
		return nil, fmt.Errorf("store: decode lists: %w", err)
	}
	for i := range lists {
		p, err := expand(lists[i].Path)
		if err != nil {
			return nil, err
		}
		lists[i].Path = p
	}

	remap := map[int]int{}
	for k, val := range v.GetStringMap("remap") {
		var from, to int
		if _, err := fmt.Sscan(k, &from); err != nil {
			return nil, fmt.Errorf("store: remap key %q: %w", k, err)
		}
		if _, err := fmt.Sscan(fmt.Sprint(val), &to); err != nil {
			return nil, fmt.Errorf("store: remap value for %q: %w", k, err)
		}
		remap[from] = to
	}

	regions, err := expand(v.GetString("regions"))
	if err != nil {
		return nil, err
	}
	statusFile, err := expand(v.GetString("status.file"))
	if err != nil {
		return nil, err
	}
	cacheDir, err := expand(v.GetString("status.cache_dir"))
	if err != nil {
		return nil, err
	}
	logFile, err := expand(v.GetString("log.file"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Regions:     regions,
		Lists:       lists,
		RegionOrder: v.GetStringSlice("order.regions"),
		Pinned:      v.GetStringSlice("order.pinned"),
		Remap:       remap,
		MapURL:      v.GetString("urls.map"),
		ActionURL:   v.GetString("urls.action"),
		Labels:      map[string]string{"A": v.GetString("labels.a"), "B": v.GetString("labels.b")},
		DefaultKind: v.GetString("default_kind"),
		Status: StatusConfig{
			URL:       v.GetString("status.url"),
			File:      statusFile,
			Timeout:   v.GetDuration("status.timeout"),
			CacheDir:  cacheDir,
			RedisAddr: v.GetString("status.redis_addr"),
			RedisPass: v.GetString("status.redis_pass"),
			RedisDB:   v.GetInt("status.redis_db"),
			RedisKey:  v.GetString("status.redis_key"),
			Resolved:  v.GetStringSlice("status.resolved"),
			Watch:     v.GetBool("status.watch"),
		},
		UI: UIConfig{
			TapThreshold: v.GetFloat64("ui.tap_threshold"),
			MinHitRadius: v.GetFloat64("ui.min_hit_radius"),
			Pinned:       v.GetBool("ui.pinned"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   logFile,
		},
		File: v.ConfigFileUsed(),
	}, nil
}

func expand(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	out, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("store: expand %s: %w", p, err)
	}
	return out, nil
}
