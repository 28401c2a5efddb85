package config

// HTTPConfig defines HTTP client and retry configuration.
type HTTPConfig struct {
	TimeoutSeconds      int               `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	DialTimeoutSeconds  int               `json:"dial_timeout_seconds,omitempty" yaml:"dial_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify  bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	FollowRedirects     bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects        int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty"`
	EnableHTTP2         bool              `json:"enable_http2" yaml:"enable_http2"`
	UserAgent           string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	CustomHeaders       map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
	MaxContentSize      int               `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"`
	MaxIdleConns        int               `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
	MaxIdleConnsPerHost int               `json:"max_idle_conns_per_host,omitempty" yaml:"max_idle_conns_per_host,omitempty"`
	MaxConnsPerHost     int               `json:"max_conns_per_host,omitempty" yaml:"max_conns_per_host,omitempty"`

	RetryConfig RetryConfig `json:"retry_config,omitempty" yaml:"retry_config,omitempty"`
}

// RetryConfig defines the fetch retry policy.
type RetryConfig struct {
	// MaxAttempts bounds the total attempt count, not just the retries.
	MaxAttempts   int  `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"omitempty,min=1,max=10"`
	BaseDelaySecs int  `json:"base_delay_secs,omitempty" yaml:"base_delay_secs,omitempty" validate:"omitempty,min=1,max=300"`
	MaxDelaySecs  int  `json:"max_delay_secs,omitempty" yaml:"max_delay_secs,omitempty" validate:"omitempty,min=1,max=3600"`
	EnableJitter  bool `json:"enable_jitter" yaml:"enable_jitter"`
}

// NewDefaultHTTPConfig creates default HTTP configuration.
func NewDefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		TimeoutSeconds:      DefaultHTTPTimeoutSeconds,
		DialTimeoutSeconds:  DefaultDialTimeoutSeconds,
		InsecureSkipVerify:  false,
		FollowRedirects:     true,
		MaxRedirects:        10,
		EnableHTTP2:         true,
		UserAgent:           DefaultUserAgent,
		MaxContentSize:      10 * 1024 * 1024,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		RetryConfig: RetryConfig{
			MaxAttempts:   DefaultRetryMaxAttempts,
			BaseDelaySecs: DefaultRetryBaseDelaySecs,
			MaxDelaySecs:  DefaultRetryMaxDelaySecs,
			EnableJitter:  false,
		},
	}
}
