package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/viant/mcpcognito"
	"github.com/viant/mcpcognito/auth"
	"github.com/viant/mcpcognito/client"
	"github.com/viant/mcpcognito/protocol"
)

// Runner authenticates, initializes a session, lists tools and optionally calls one
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	// API replaces the Cognito client
	API auth.InitiateAuthAPI
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	clientOptions, err := options.ClientOptions(ctx)
	if err != nil {
		return err
	}
	clientOptions.Logger = r.logger(options.Verbose)
	if r.API != nil {
		clientOptions.Auth.API = r.API
	}
	arguments, err := options.Arguments()
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cli, err := mcpcognito.NewClient(ctx, clientOptions)
	if err != nil {
		return err
	}
	if info := cli.ServerInfo(); info != nil {
		green.Fprint(r.Stdout, "▶ ")
		fmt.Fprint(r.Stdout, "Server: ")
		cyan.Fprintf(r.Stdout, "%s %s\n", info.Name, info.Version)
	}
	if options.Health {
		if err = r.health(ctx, cli); err != nil {
			return err
		}
	}
	tools, err := cli.ListTools(ctx, nil)
	if err != nil {
		return err
	}
	green.Fprint(r.Stdout, "▶ ")
	fmt.Fprintf(r.Stdout, "Tools: %d\n", len(tools.Tools))
	for i := range tools.Tools {
		tool := &tools.Tools[i]
		fmt.Fprint(r.Stdout, "    ")
		cyan.Fprint(r.Stdout, tool.Name)
		fmt.Fprintf(r.Stdout, ": %s\n", protocol.ToolDescription(tool))
	}
	if options.Tool == "" {
		return nil
	}
	green.Fprint(r.Stdout, "▶ ")
	fmt.Fprint(r.Stdout, "Calling: ")
	yellow.Fprintln(r.Stdout, options.Tool)
	result, err := cli.CallTool(ctx, options.Tool, arguments)
	if err != nil {
		return err
	}
	for _, text := range result.Texts() {
		fmt.Fprintln(r.Stdout, text)
	}
	if result.IsError {
		return fmt.Errorf("tool %v reported error: %v", options.Tool, result.Text())
	}
	return nil
}

func (r *Runner) health(ctx context.Context, cli *client.Client) error {
	status, err := cli.Health(ctx)
	if err != nil {
		return err
	}
	green := color.New(color.FgGreen)
	green.Fprint(r.Stdout, "▶ ")
	fmt.Fprintf(r.Stdout, "Health: %s (%s)\n", status.Status, status.Service)
	return nil
}

func (r *Runner) logger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(r.Stderr, &slog.HandlerOptions{Level: level}))
}

// Run runs session with command line arguments
func Run(args []string) error {
	runner := &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
	return runner.Run(context.Background(), args)
}
