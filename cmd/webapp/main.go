package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-webapp-plugins/internal/config"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `Usage: webapp [-c configs_dir] [-log-level level] <command>

Commands:
  config dump                 print the parsed configuration of every plugin
  config documentation        print the configuration file format
  run [-foreground] [-listen host:port]
                              start the web application
  user add -username U -person P [-password-stdin]
  user password -username U   set a password read from stdin
  version                     print build information
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.GetStructuredConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "error getting configs: %v\n\n%s", err, usage)
		return 2
	}

	if cfg.LogLevel != "" {
		if err = logger.SetLevel(cfg.LogLevel); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	if len(cfg.Args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd := &command{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    logger.NewLogger("webapp"),
	}

	switch cfg.Args[0] {
	case "config":
		return cmd.config(cfg.Args[1:])
	case "run":
		return cmd.run(ctx, cfg.Args[1:])
	case "user":
		return cmd.user(ctx, cfg.Args[1:])
	case "version":
		printBuildInfo(stdout)
		return 0
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n%s", cfg.Args[0], usage)
	return 2
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

func printBuildInfo(w io.Writer) {
	info := buildInfo()
	fmt.Fprintf(w, "Build version: %s\n", info.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", info.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", info.BuildCommit())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
