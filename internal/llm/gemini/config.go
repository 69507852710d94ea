package gemini

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the Gemini client. APIKey is passed explicitly; the client
// never reads ambient process state.
type Config struct {
	APIKey      string
	BaseURL     string  // default https://generativelanguage.googleapis.com
	Model       string  // e.g. "gemini-2.5-flash"
	Temperature float32 // 0..2
	Timeout     time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}
