package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the global flags from args. Parsing stops at the first
// positional argument, which together with everything after it is returned
// in StructuredConfig.Args.
//
// Flags:
//
//	-c/-config directory with per-plugin YAML files
//	-log-level log level override (trace, debug, info, warning, error, critical)
func ParseFlags(args []string) (*StructuredConfig, error) {
	var configsPath string
	var logLevel string

	fs := flag.NewFlagSet("webapp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configsPath, "c", "", "Directory with plugin config files")
	fs.StringVar(&configsPath, "config", "", "Directory with plugin config files (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level override")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		ConfigsPath: configsPath,
		LogLevel:    logLevel,
		Args:        fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// IsSet reports whether the address was populated by Set.
func (a *NetAddress) IsSet() bool {
	return a.Host != "" || a.Port != 0
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return errors.New("need address in a form `host:port`")
	}

	host := strings.Trim(s[:idx], "[]")
	port, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
