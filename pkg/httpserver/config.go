package httpserver

import "time"

// Config holds HTTP server settings
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	base := []Option{func(o *options) {
		if cfg.Addr != "" {
			o.addr = cfg.Addr
		}
		if cfg.ReadHeaderTimeout > 0 {
			o.readHeaderTimeout = cfg.ReadHeaderTimeout
		}
		if cfg.ReadTimeout > 0 {
			o.readTimeout = cfg.ReadTimeout
		}
		if cfg.WriteTimeout > 0 {
			o.writeTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			o.idleTimeout = cfg.IdleTimeout
		}
		if cfg.ShutdownTimeout > 0 {
			o.shutdownTimeout = cfg.ShutdownTimeout
		}
	}}
	return New(append(base, opts...)...)
}
