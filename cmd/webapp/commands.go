package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-webapp-plugins/internal/config"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugin"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugins"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugins/passwordauth"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugins/usercore"
	"github.com/MKhiriev/go-webapp-plugins/internal/server"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

type command struct {
	cfg    *config.StructuredConfig
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logger.Logger
}

func (c *command) config(args []string) int {
	if len(args) != 1 {
		fmt.Fprint(c.stderr, usage)
		return 2
	}

	list, err := plugins.Register(c.cfg.ConfigsPath)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}

	switch args[0] {
	case "dump":
		fmt.Fprintln(c.stdout, "Below is dumped configuration files for all plugins")
		for _, meta := range list {
			dump, err := meta.ConfigDump()
			if err != nil {
				fmt.Fprintf(c.stderr, "Failed to dump config for plugin %s: %v\n", meta.Name(), err)
				return 1
			}
			fmt.Fprintf(c.stdout, "\nConfig for plugin %s:\n%s", meta.Name(), dump)
		}
		return 0

	case "documentation":
		fmt.Fprintf(c.stdout, "Configuration file format. Default path is %s\n", config.DefaultConfigsPath)
		for _, meta := range list {
			fmt.Fprintf(c.stdout, "\nConfig documentation for plugin %s:\n%s", meta.Name(), meta.ConfigDocumentation())
		}
		return 0
	}

	fmt.Fprintf(c.stderr, "unknown config command %q\n", args[0])
	return 2
}

func (c *command) run(ctx context.Context, args []string) int {
	fs := newFlagSet("run", c.stderr)
	foreground := fs.Bool("foreground", false, "Stay attached to the terminal")
	var listen config.NetAddress
	fs.Var(&listen, "listen", "Override bind_address and bind_port of core.yaml, host:port")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	printBuildInfo(c.stdout)

	coreCell, err := server.LoadCoreConfig(c.cfg.ConfigsPath)
	if err != nil {
		c.log.Err(err).Msg("error loading core config")
		return 1
	}
	coreCfg, err := coreCell.Get()
	if err != nil {
		c.log.Err(err).Msg("error reading core config")
		return 1
	}
	if listen.IsSet() {
		coreCfg.BindAddress = listen.Host
		coreCfg.BindPort = uint16(listen.Port)
	}
	if c.cfg.LogLevel == "" {
		if err = logger.SetLevel(coreCfg.LogLevel); err != nil {
			c.log.Err(err).Msg("error setting log level")
			return 1
		}
	}

	if !*foreground {
		c.log.Warn().Msg("daemonizing is not supported, running in foreground")
	}

	list, err := plugins.Register(c.cfg.ConfigsPath)
	if err != nil {
		c.log.Err(err).Msg("error registering plugins")
		return 1
	}

	instances, err := plugins.Init(ctx, list, c.log)
	if err != nil {
		c.log.Err(err).Msg("error initializing plugins")
		return 1
	}
	defer func() {
		if err := plugins.Close(instances); err != nil {
			c.log.Err(err).Msg("error closing plugins")
		}
	}()

	appInfo, err := service.NewAppInfoService(buildInfo(), c.log)
	if err != nil {
		c.log.Err(err).Msg("error creating app info service")
		return 1
	}

	if err = server.NewHost(coreCfg, instances, appInfo, c.log).Run(ctx); err != nil {
		c.log.Err(err).Msg("server stopped with error")
		return 1
	}
	return 0
}

func (c *command) user(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return 2
	}

	list, err := plugins.Register(c.cfg.ConfigsPath)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}

	switch args[0] {
	case "add":
		return c.userAdd(ctx, list, args[1:])
	case "password":
		return c.userPassword(ctx, list, args[1:])
	}

	fmt.Fprintf(c.stderr, "unknown user command %q\n", args[0])
	return 2
}

func (c *command) userAdd(ctx context.Context, list []plugin.Metadata, args []string) int {
	fs := newFlagSet("user add", c.stderr)
	username := fs.String("username", "", "Login name")
	person := fs.String("person", "", "Display name")
	passwordStdin := fs.Bool("password-stdin", false, "Read the initial password from stdin")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var password string
	if *passwordStdin {
		var err error
		if password, err = readPassword(c.stdin); err != nil {
			fmt.Fprintln(c.stderr, err)
			return 1
		}
	}

	core, err := plugins.InitOne[*usercore.Instance](ctx, list, usercore.Name, c.log)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer core.Close()

	user, err := core.Services().UserService.CreateUser(ctx, models.NewUser{Username: *username, Person: *person})
	if err != nil {
		fmt.Fprintf(c.stderr, "Failed to add user %s: %v\n", *username, err)
		return 1
	}
	fmt.Fprintf(c.stdout, "Added user %s with id %d\n", user.Username, user.ID)

	if !*passwordStdin {
		return 0
	}
	return c.setPassword(ctx, list, user.Username, password)
}

func (c *command) userPassword(ctx context.Context, list []plugin.Metadata, args []string) int {
	fs := newFlagSet("user password", c.stderr)
	username := fs.String("username", "", "Login name")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	password, err := readPassword(c.stdin)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	return c.setPassword(ctx, list, *username, password)
}

func (c *command) setPassword(ctx context.Context, list []plugin.Metadata, username, password string) int {
	auth, err := plugins.InitOne[*passwordauth.Instance](ctx, list, passwordauth.Name, c.log)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer auth.Close()

	if err = auth.Services().PasswordService.SetUserPassword(ctx, username, password); err != nil {
		fmt.Fprintf(c.stderr, "Failed to set password for user %s: %v\n", username, err)
		return 1
	}
	fmt.Fprintf(c.stdout, "Password set for user %s\n", username)
	return 0
}

// readPassword returns the first line of r without its line terminator.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password on stdin")
	}
	return password, nil
}

func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}
