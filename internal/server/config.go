// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
)

// Config is the schema of core.yaml.
type Config struct {
	BindAddress     string         `yaml:"bind_address" doc:"Bind web application to specified address. For example, \"127.0.0.1\"."`
	BindPort        uint16         `yaml:"bind_port" doc:"Bind web application to specified port. For example, 8080."`
	Workers         int            `yaml:"workers,omitempty" doc:"Number of HTTP workers. Defaults to the number of CPUs."`
	LogLevel        string         `yaml:"log_level" doc:"Max log level: trace, debug, info, warning, error or critical."`
	KeepAlive       time.Duration  `yaml:"keep_alive,omitempty" doc:"How long idle keep-alive connections stay open. Defaults to 5s."`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout,omitempty" doc:"Time given to in-flight requests on shutdown. Defaults to 30s."`
	RequestTimeout  time.Duration  `yaml:"request_timeout,omitempty" doc:"Deadline of a single request. Defaults to 60s."`
	RealIP          bool           `yaml:"real_ip,omitempty" doc:"Take the client address from X-Real-IP or X-Forwarded-For. Enable only behind a trusted proxy."`
	CORS            *CORSConfig    `yaml:"cors,omitempty" doc:"Allowed cross-origin callers. Any origin is allowed when omitted."`
	OpenAPI         *OpenAPIConfig `yaml:"openapi,omitempty" doc:"Where to publish the API document. Not published when omitted."`
	Cookie          CookieConfig   `yaml:"cookie,omitempty" doc:"Session cookie attributes."`
}

type CORSConfig struct {
	Origins []string `yaml:"origins" doc:"Origins allowed to call the API, for example https://admin.example.com."`
}

type OpenAPIConfig struct {
	SpecURI    string `yaml:"spec_uri" doc:"Path of the OpenAPI JSON document, for example /api-docs/openapi.json."`
	SwaggerURI string `yaml:"swagger_uri" doc:"Path of the Swagger UI page, for example /swagger-ui."`
}

type CookieConfig struct {
	Secure bool `yaml:"secure,omitempty" doc:"Send the session cookie over HTTPS only."`
}

// SetDefaults implements config.Defaulter.
func (c *Config) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = 5 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 60 * time.Second
	}
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		return errors.New("bind_address is required")
	}
	if c.BindPort == 0 {
		return errors.New("bind_port is required")
	}
	if c.Workers < 1 {
		return errors.New("workers must be positive")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.OpenAPI != nil {
		for name, uri := range map[string]string{"spec_uri": c.OpenAPI.SpecURI, "swagger_uri": c.OpenAPI.SwaggerURI} {
			if !strings.HasPrefix(uri, "/") {
				return fmt.Errorf("openapi.%s must be an absolute path", name)
			}
		}
		if c.OpenAPI.SpecURI == c.OpenAPI.SwaggerURI {
			return errors.New("openapi.spec_uri and openapi.swagger_uri must differ")
		}
	}
	return nil
}

// Address is the host:port the listener binds.
func (c *Config) Address() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(int(c.BindPort)))
}
