package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Input source kinds
const (
	SourceGPIO = "gpio"
	SourceHID  = "hid"
)

// Display backends
const (
	BackendNone = "none"
	BackendHID  = "hid"
)

type Config struct {
	Input   InputConfig   `yaml:"input"`
	Timing  TimingConfig  `yaml:"timing"`
	Display DisplayConfig `yaml:"display"`
	Menu    MenuItem      `yaml:"menu"`
}

type InputConfig struct {
	Source string `yaml:"source"`

	// gpio
	AlphaPin  string `yaml:"alpha_pin"`
	BetaPin   string `yaml:"beta_pin"`
	ActiveLow *bool  `yaml:"active_low,omitempty"`

	// hid
	VendorID    uint16 `yaml:"vendor_id"`
	ProductID   uint16 `yaml:"product_id"`
	AlphaButton *int   `yaml:"alpha_button,omitempty"`
	BetaButton  *int   `yaml:"beta_button,omitempty"`
}

type TimingConfig struct {
	GracePeriodMs  int `yaml:"grace_period_ms"`
	PollIntervalMs int `yaml:"poll_interval_ms"`
}

type DisplayConfig struct {
	Backend      string `yaml:"backend"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	BacklightPin string `yaml:"backlight_pin,omitempty"`
}

// MenuItem is one entry of the menu tree. Exactly one of Items, Command or
// Value is set, except on the root which only has Items.
type MenuItem struct {
	Title   string       `yaml:"title"`
	Items   []MenuItem   `yaml:"items,omitempty"`
	Command string       `yaml:"command,omitempty"`
	Args    []string     `yaml:"args,omitempty"`
	Value   *ValueConfig `yaml:"value,omitempty"`
}

type ValueConfig struct {
	Min     int `yaml:"min"`
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"`
	Step    int `yaml:"step,omitempty"`
}

// IsSubmenu reports whether the item opens a nested menu
func (m MenuItem) IsSubmenu() bool {
	return len(m.Items) > 0
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Input.Source {
	case SourceGPIO:
		if c.Input.AlphaPin == c.Input.BetaPin {
			return fmt.Errorf("input.alpha_pin and input.beta_pin must differ (both %q)", c.Input.AlphaPin)
		}
	case SourceHID:
		if c.Input.VendorID == 0 {
			return fmt.Errorf("input.vendor_id is required for hid input")
		}
		if c.Input.ProductID == 0 {
			return fmt.Errorf("input.product_id is required for hid input")
		}
		a, b := *c.Input.AlphaButton, *c.Input.BetaButton
		if a < 0 || a > 15 || b < 0 || b > 15 {
			return fmt.Errorf("input buttons must be in [0,15], got %d and %d", a, b)
		}
		if a == b {
			return fmt.Errorf("input.alpha_button and input.beta_button must differ (both %d)", a)
		}
	default:
		return fmt.Errorf("unknown input.source %q", c.Input.Source)
	}

	if c.Timing.GracePeriodMs < 0 {
		return fmt.Errorf("timing.grace_period_ms must not be negative")
	}
	if c.Timing.PollIntervalMs < 0 {
		return fmt.Errorf("timing.poll_interval_ms must not be negative")
	}

	switch c.Display.Backend {
	case BackendNone:
	case BackendHID:
		if c.Input.Source != SourceHID {
			return fmt.Errorf("display.backend hid requires input.source hid")
		}
	default:
		return fmt.Errorf("unknown display.backend %q", c.Display.Backend)
	}

	for i, item := range c.Menu.Items {
		if err := validateItem(item, fmt.Sprintf("menu.items[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateItem(item MenuItem, path string) error {
	if item.Title == "" {
		return fmt.Errorf("%s: title is required", path)
	}

	kinds := 0
	if item.IsSubmenu() {
		kinds++
	}
	if item.Command != "" {
		kinds++
	}
	if item.Value != nil {
		kinds++
	}
	if kinds != 1 {
		return fmt.Errorf("%s (%s): exactly one of items, command or value must be set", path, item.Title)
	}

	if v := item.Value; v != nil {
		if v.Min > v.Max {
			return fmt.Errorf("%s (%s): value min %d exceeds max %d", path, item.Title, v.Min, v.Max)
		}
		if v.Initial < v.Min || v.Initial > v.Max {
			return fmt.Errorf("%s (%s): initial value %d outside [%d,%d]", path, item.Title, v.Initial, v.Min, v.Max)
		}
		if v.Step < 0 {
			return fmt.Errorf("%s (%s): value step must not be negative", path, item.Title)
		}
	}

	for i, child := range item.Items {
		if err := validateItem(child, fmt.Sprintf("%s.items[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Input.Source == "" {
		c.Input.Source = SourceGPIO
	}
	if c.Input.AlphaPin == "" {
		c.Input.AlphaPin = "GPIO23"
	}
	if c.Input.BetaPin == "" {
		c.Input.BetaPin = "GPIO24"
	}
	if c.Input.ActiveLow == nil {
		activeLow := true
		c.Input.ActiveLow = &activeLow
	}
	if c.Input.AlphaButton == nil {
		a := 0
		c.Input.AlphaButton = &a
	}
	if c.Input.BetaButton == nil {
		b := 1
		c.Input.BetaButton = &b
	}
	if c.Timing.GracePeriodMs == 0 {
		c.Timing.GracePeriodMs = 500
	}
	if c.Timing.PollIntervalMs == 0 {
		c.Timing.PollIntervalMs = 16
	}
	if c.Display.Backend == "" {
		c.Display.Backend = BackendNone
	}
	if c.Display.Width == 0 {
		c.Display.Width = 240
	}
	if c.Display.Height == 0 {
		c.Display.Height = 135
	}
	if c.Menu.Title == "" {
		c.Menu.Title = "Menu"
	}
	defaultSteps(c.Menu.Items)
}

func defaultSteps(items []MenuItem) {
	for i := range items {
		if v := items[i].Value; v != nil && v.Step == 0 {
			v.Step = 1
		}
		defaultSteps(items[i].Items)
	}
}

// UpdateDeviceIDs updates the vendor_id and product_id in a config file
// while preserving the rest of the file structure and comments
func UpdateDeviceIDs(path string, vendorID, productID uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(data)

	vendorRegex := regexp.MustCompile(`(?m)^(\s*vendor_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	if !vendorRegex.MatchString(content) {
		return fmt.Errorf("no input.vendor_id key in %s", path)
	}
	content = vendorRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", vendorID))

	productRegex := regexp.MustCompile(`(?m)^(\s*product_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = productRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", productID))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a HID-backed config for the given device with
// a minimal menu
func CreateDefaultConfig(path string, vendorID, productID uint16) error {
	content := fmt.Sprintf(`# duo-pad configuration

input:
  source: hid
  vendor_id: 0x%04X
  product_id: 0x%04X
  alpha_button: 0
  beta_button: 1

timing:
  grace_period_ms: 500
  poll_interval_ms: 16

display:
  backend: hid
  width: 240
  height: 135

menu:
  title: Main
  items:
    - title: Say hello
      command: echo
      args: ["hello"]
`, vendorID, productID)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
