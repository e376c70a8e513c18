package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	// Path of the rc file the config was read from, empty when only
	// defaults are in use.
	Path string

	// File settings
	SnapshotFile string
	FrameDir     string
	LogFile      string

	// Reminder settings
	ReminderInterval time.Duration
	ReminderDuration time.Duration
	ReminderRecheck  time.Duration
	ReminderMessage  string
	RolloverSchedule string

	// Interaction settings
	DragThreshold int
	StartX        int
	StartY        int

	// UI settings
	Colors      map[string]string
	KeyBindings map[string]string
}

func DefaultConfig() *Config {
	return &Config{
		SnapshotFile: filepath.Join(dataDir(), "hydration.json"),
		LogFile:      "",

		ReminderInterval: 30 * time.Minute,
		ReminderDuration: 10 * time.Second,
		ReminderRecheck:  time.Second,
		ReminderMessage:  "Time for a sip of water!",
		RolloverSchedule: "0 0 * * *",

		DragThreshold: 5,
		StartX:        10,
		StartY:        5,

		Colors: map[string]string{
			"sprite":   "39",
			"alert":    "203",
			"bubble":   "231",
			"progress": "45",
			"header":   "220",
			"help":     "241",
			"message":  "220",
		},

		KeyBindings: map[string]string{
			"q": "quit",
			"?": "help",
			"d": "drink",
			"l": "log",
			"s": "setup",
		},
	}
}

// LoadConfig reads the first rc file found in the usual locations. With no rc
// file the defaults are returned.
func LoadConfig() (*Config, error) {
	configPaths := []string{
		os.Getenv("DEW_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "dew", "dewrc"),
		filepath.Join(os.Getenv("HOME"), ".config", "dew", "dewrc"),
		filepath.Join(os.Getenv("HOME"), ".dewrc"),
	}

	for _, path := range configPaths {
		if path == "" || path == filepath.Join("dew", "dewrc") {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile reads the rc file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.loadFromFile(path); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	config.Path = path
	return config, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("reminder_interval must be positive")
	}
	if c.ReminderDuration <= 0 {
		return fmt.Errorf("reminder_duration must be positive")
	}
	if c.ReminderDuration >= c.ReminderInterval {
		return fmt.Errorf("reminder_duration (%s) must be shorter than reminder_interval (%s)", c.ReminderDuration, c.ReminderInterval)
	}
	if c.ReminderRecheck <= 0 {
		return fmt.Errorf("reminder_recheck must be positive")
	}
	if _, err := c.Rollover(); err != nil {
		return err
	}
	return nil
}

// Rollover parses the daily rollover schedule.
func (c *Config) Rollover() (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(c.RolloverSchedule)
	if err != nil {
		return nil, fmt.Errorf("invalid rollover_schedule %q: %w", c.RolloverSchedule, err)
	}
	return schedule, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		c.KeyBindings[matches[1]] = matches[2]
		return nil
	}

	// color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "snapshot_file":
		c.SnapshotFile = expandHome(value)

	case "frame_dir":
		c.FrameDir = expandHome(value)

	case "log_file":
		c.LogFile = expandHome(value)

	case "reminder_interval":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid reminder_interval: %s", value)
		}
		c.ReminderInterval = d

	case "reminder_duration":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid reminder_duration: %s", value)
		}
		c.ReminderDuration = d

	case "reminder_recheck":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid reminder_recheck: %s", value)
		}
		c.ReminderRecheck = d

	case "reminder_message":
		c.ReminderMessage = value

	case "rollover_schedule":
		c.RolloverSchedule = value

	case "drag_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid drag_threshold: %s", value)
		}
		c.DragThreshold = n

	case "start_x":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid start_x: %s", value)
		}
		c.StartX = n

	case "start_y":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid start_y: %s", value)
		}
		c.StartY = n

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err == nil {
		return d, nil
	}
	seconds, err2 := strconv.Atoi(value)
	if err2 != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "dew")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dew")
}
