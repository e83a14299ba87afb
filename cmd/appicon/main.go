package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"

	"github.com/Mavwarf/appicon/internal/manifest"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// noColor disables ANSI output when NO_COLOR is set or stdout is not a
// terminal.
var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

type options struct {
	configPath string
	root       string
	only       []manifest.Platform
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run 'appicon help' for usage.\n")
		return 1
	}

	cmd := ""
	if len(rest) > 0 {
		cmd = rest[0]
	}
	switch cmd {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "version", "-V", "--version":
		printVersion(stdout)
		return 0
	case "list", "-l", "--list":
		return listCmd(opts, stdout, stderr)
	case "check":
		return checkCmd(opts, stdout, stderr)
	case "draw":
		if len(rest) > 1 {
			fmt.Fprintf(stderr, "Error: draw takes no arguments\n")
			return 1
		}
		return drawCmd(opts, stdout, stderr)
	case "svg":
		return svgCmd(rest[1:], opts, stdout, stderr)
	default:
		return svgCmd(rest, opts, stdout, stderr)
	}
}

// parseArgs pulls the global options out of args and returns the rest.
func parseArgs(args []string) (options, []string, error) {
	var opts options
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		case "--root", "-r":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--root requires a directory")
			}
			opts.root = args[i+1]
			i++
		case "--only":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--only requires a platform list (e.g. ios,web)")
			}
			for _, s := range strings.Split(args[i+1], ",") {
				if strings.TrimSpace(s) == "" {
					continue
				}
				p, err := manifest.ParsePlatform(s)
				if err != nil {
					return opts, nil, err
				}
				opts.only = append(opts.only, p)
			}
			i++
		case "--verbose":
			opts.verbose = true
		default:
			rest = append(rest, args[i])
		}
	}
	return opts, rest, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "appicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "appicon %s - Generate Flutter app icons for every platform\n", version)
	fmt.Fprintln(w, `
Usage:
  appicon [options] [file.svg]     Render icons from an SVG (ImageMagick, then Inkscape)
  appicon draw [options]           Render icons from the built-in coffee-cart drawing
  appicon check [options]          Verify every icon exists at the right size
  appicon list [options]           Show the icon manifest

Options:
  --config, -c <path>    Path to appicon.json / appicon.yaml
  --root, -r <dir>       Project root the manifest paths are relative to
  --only <list>          Comma-separated platforms: android,ios,macos,web,windows
  --verbose              Log converter commands and timings to stderr

Commands:
  version, -V, --version  Show version and build date
  help, -h, --help        Show this help message

Config resolution:
  1. --config <path>                      (explicit)
  2. appicon.json / appicon.yaml in the working directory
  3. built-in defaults (source assets/icon/coffee_cart_icon.svg)

Paths:
  --root and a file.svg argument are relative to the working directory.
  source, root and log.file_path in a config file are relative to the
  directory holding that file. Without a source, the SVG is
  assets/icon/coffee_cart_icon.svg under the project root.

Examples:
  appicon                           Render from assets/icon/coffee_cart_icon.svg
  appicon art/logo.svg              Render from another SVG
  appicon draw --only web           Draw only the web icons
  appicon check -r ../my_app        Verify the icons of another project`)
}
