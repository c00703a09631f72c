// Package cmd implements the effectview CLI commands.
//
// The root command dispatches to subcommands (render, modes, version).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-drift/effectview/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = struct {
	Long  string
	Usage string
	Subs  []*Command
}{
	Long: `effectview renders an image through a shape mask, a blur and a progress
overlay, configured from effectview.yaml and flags.

Use "effectview <command> --help" for more information about a command.`,
	Usage: "effectview [-v] <command> [flags]",
}

// stdout is where commands print. Tests replace it.
var stdout io.Writer = os.Stdout

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.Subs = append(rootCmd.Subs, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	var filtered []string
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			if len(filtered) == 0 {
				printHelp()
				return nil
			}
			filtered = append(filtered, arg)
		case "-v", "--verbose":
			if len(filtered) == 0 {
				logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
				continue
			}
			filtered = append(filtered, arg)
		case "--version":
			if len(filtered) == 0 {
				return runVersion(nil)
			}
			filtered = append(filtered, arg)
		default:
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		printHelp()
		return nil
	}

	name := filtered[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", name)
		printHelp()
		return fmt.Errorf("unknown command: %s", name)
	}

	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}
	return cmd.Run(cmdArgs)
}

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the effectview version and build time.",
		Usage: "effectview version",
		Run:   runVersion,
	})
}

func runVersion([]string) error {
	fmt.Fprintf(stdout, "effectview version %s (built %s)\n", Version, BuildTime)
	return nil
}

func printHelp() {
	fmt.Fprintln(stdout, rootCmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range rootCmd.Subs {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --verbose        Log debug output to stderr")
	fmt.Fprintln(stdout, "  --version            Show version information")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  effectview render --in photo.jpg --out avatar.png")
	fmt.Fprintln(stdout, "  effectview modes")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
