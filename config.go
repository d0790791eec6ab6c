package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spotdemo4/quick-predict/internal/logging"
	"github.com/spotdemo4/quick-predict/internal/tui"
)

const (
	defaultURL     = "http://127.0.0.1:8000"
	defaultTimeout = 30 * time.Second
)

type config struct {
	url     *url.URL
	timeout time.Duration
	headers map[string]string
	log     logging.Config
}

func loadEnvFile() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		tui.PrintWarn("warning: could not get config dir: %v", err)
		return
	}

	path := filepath.Join(configDir, "quick-predict.env")
	if err := godotenv.Load(path); err != nil {
		tui.PrintWarn("warning: could not load %s", path)
	}
}

func getConfig() (c config, err error) {
	// Get env vars
	urlStr := os.Getenv("QP_URL")
	if urlStr == "" {
		urlStr = defaultURL
	}
	c.url, err = parseURL(urlStr)
	if err != nil {
		return c, err
	}

	c.timeout = defaultTimeout
	if timeoutStr := os.Getenv("QP_TIMEOUT"); timeoutStr != "" {
		c.timeout, err = parseTimeout(timeoutStr)
		if err != nil {
			return c, fmt.Errorf("invalid value for 'QP_TIMEOUT': %w", err)
		}
	}

	c.log = logging.Config{
		File:   os.Getenv("QP_LOG_FILE"),
		Level:  os.Getenv("QP_LOG_LEVEL"),
		Format: os.Getenv("QP_LOG_FORMAT"),
	}

	// Get headers
	c.headers = map[string]string{}
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "QP_HEADER_") {
			continue
		}

		kv := strings.SplitN(e, "=", 2)
		if len(kv) != 2 {
			continue
		}

		c.headers[strings.TrimPrefix(kv[0], "QP_HEADER_")] = kv[1]
	}

	return c, nil
}

func parseURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("could not parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("could not parse url: '%s' needs a scheme and host", urlStr)
	}

	return u, nil
}

func parseTimeout(timeoutStr string) (time.Duration, error) {
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, err
	}
	if timeout <= 0 {
		return 0, errors.New("must be positive")
	}

	return timeout, nil
}
