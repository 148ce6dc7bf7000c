package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/render"
	"github.com/bloodmagesoftware/floorplan/share"
	"gopkg.in/yaml.v3"
)

const configFileName = "floorplan.yaml"

// ErrNoProject is returned by FindProjectRoot when no floorplan.yaml exists above the working directory.
var ErrNoProject = errors.New("floorplan.yaml not found")

// Config represents the project configuration from floorplan.yaml.
type Config struct {
	Name      string       `yaml:"name"`
	PlansDir  string       `yaml:"plans_dir"`
	ExportDir string       `yaml:"export_dir"`
	GridSize  int          `yaml:"grid_size"`
	ShowGrid  *bool        `yaml:"show_grid,omitempty"`
	Canvas    CanvasConfig `yaml:"canvas"`
	ShareBase string       `yaml:"share_base,omitempty"`
	Server    ServerConfig `yaml:"server"`

	// Root is the directory containing floorplan.yaml, or the working directory for defaults.
	Root string `yaml:"-"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	DBPath       string `yaml:"db_path"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	CacheMB      int    `yaml:"cache_mb"`
}

// Default is the configuration used outside of a project.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.PlansDir == "" {
		c.PlansDir = "plans"
	}
	if c.ExportDir == "" {
		c.ExportDir = "export"
	}
	if c.GridSize == 0 {
		c.GridSize = grid.DefaultCellSize
	}
	if c.ShowGrid == nil {
		show := true
		c.ShowGrid = &show
	}
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = render.DefaultWidth
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = render.DefaultHeight
	}
	if c.ShareBase == "" {
		c.ShareBase = share.DefaultShareBase
	}
	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Server.DBPath == "" {
		c.Server.DBPath = filepath.Join("data", "plans.db")
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.CacheMB <= 0 {
		c.Server.CacheMB = 64
	}
}

// ApplyEnv overrides server settings from the environment (PORT, DB_PATH, READ_TIMEOUT, WRITE_TIMEOUT, CACHE_MB).
func (c *Config) ApplyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.DBPath = getEnv("DB_PATH", c.Server.DBPath)
	c.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.CacheMB = getEnvAsInt("CACHE_MB", c.Server.CacheMB)
}

// Grid returns the grid settings of the project.
func (c *Config) Grid() grid.Settings {
	return grid.Settings{CellSize: grid.ClampCellSize(c.GridSize), Visible: c.ShowGrid == nil || *c.ShowGrid}
}

// Path resolves a configured path against the project root.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// PlanPath is the file of the named plan inside the plans directory.
func (c *Config) PlanPath(name string) string {
	return filepath.Join(c.Path(c.PlansDir), name+".yaml")
}

// FindProjectRoot walks up from the current working directory looking for floorplan.yaml.
// Returns the directory containing floorplan.yaml, or ErrNoProject if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return findRoot(cwd)
}

func findRoot(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in any parent directory of %s", ErrNoProject, start)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the floorplan.yaml file from the given project root.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	if config.GridSize != 0 && (config.GridSize < grid.MinCellSize || config.GridSize > grid.MaxCellSize) {
		return nil, fmt.Errorf("'grid_size' in %s must be between %d and %d", configFileName, grid.MinCellSize, grid.MaxCellSize)
	}

	config.applyDefaults()
	config.Root = projectRoot
	return &config, nil
}

// Load finds and loads the project around the working directory.
// Outside of a project it falls back to Default rooted at the working directory.
func Load() (*Config, error) {
	root, err := FindProjectRoot()
	if errors.Is(err, ErrNoProject) {
		config := Default()
		config.Root, _ = os.Getwd()
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(root)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
