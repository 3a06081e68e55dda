package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# VRating Configuration

[database]
# Path to the SQLite database file. Leave empty to use the default
# location under ~/.local/share/vrating/.
path = ""

[rating]
# Category weights as percentages. All five must be set to take effect;
# leave at zero to use the built-in defaults (30/25/20/15/10).
profitability_weight = 0.0
risk_management_weight = 0.0
consistency_weight = 0.0
emotional_discipline_weight = 0.0
journaling_adherence_weight = 0.0

[logging]
# Logging level: trace, debug, info, warn, error
level = "info"
# Log file path. Leave empty to log under the config directory.
file = ""
# Rotation settings
max_size_mb = 10
max_backups = 3
max_age_days = 28
# Also log to the console
console = false

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04:05"
# Currency symbol for P&L display
currency = "$"
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}
