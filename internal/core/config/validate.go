package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/marginhq/margin/internal/core/styles"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("server.url", c.Server.URL, isHTTPURL),
		criterio.Run("server.timeout", c.Server.Timeout, isPositiveDuration),
		criterio.Run("tui.theme", c.TUI.Theme, isKnownTheme),
	)
}

func isHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func isPositiveDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

func isKnownTheme(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q, available: %s", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
