// Package convert drives the external command-line image converters used to
// rasterize SVG sources and to pack Windows icon containers.
package convert

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Tool is an external converter that can render an SVG at a square size.
type Tool struct {
	Name string
	Args func(src, dst string, size int) []string
}

var (
	// Magick is ImageMagick 7. The canvas is extended to the exact square
	// so non-square sources still produce size×size output.
	Magick = Tool{Name: "magick", Args: func(src, dst string, size int) []string {
		dim := geometry(size)
		return []string{"-background", "none", src, "-resize", dim, "-gravity", "center", "-extent", dim, dst}
	}}

	// LegacyMagick is the ImageMagick 6 "convert" binary.
	LegacyMagick = Tool{Name: "convert", Args: Magick.Args}

	// Inkscape uses the 1.x export flags.
	Inkscape = Tool{Name: "inkscape", Args: func(src, dst string, size int) []string {
		n := strconv.Itoa(size)
		return []string{src, "--export-type=png", "--export-filename=" + dst, "--export-width=" + n, "--export-height=" + n}
	}}

	// RSVG is librsvg's rsvg-convert.
	RSVG = Tool{Name: "rsvg-convert", Args: func(src, dst string, size int) []string {
		n := strconv.Itoa(size)
		return []string{"-w", n, "-h", n, "-f", "png", "-o", dst, src}
	}}
)

// DefaultTools is the fallback order used when no tools are configured:
// ImageMagick first, Inkscape second.
var DefaultTools = []Tool{Magick, Inkscape}

var known = map[string]Tool{
	Magick.Name:       Magick,
	LegacyMagick.Name: LegacyMagick,
	Inkscape.Name:     Inkscape,
	RSVG.Name:         RSVG,
}

// Names lists the tool names ByName accepts.
func Names() []string {
	return []string{Magick.Name, LegacyMagick.Name, Inkscape.Name, RSVG.Name}
}

// ByName resolves configured tool names, keeping their order.
func ByName(names []string) ([]Tool, error) {
	if len(names) == 0 {
		return DefaultTools, nil
	}
	tools := make([]Tool, 0, len(names))
	for _, n := range names {
		t, ok := known[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown converter %q (supported: %s)", n, strings.Join(Names(), ", "))
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// Command returns the full command line Run would execute.
func (t Tool) Command(src, dst string, size int) []string {
	return append([]string{t.Name}, t.Args(src, dst, size)...)
}

// Run renders src to dst at size×size. Success is the tool's zero exit
// status. Returns an error if the tool is not found on PATH.
func (t Tool) Run(src, dst string, size int) error {
	path, err := exec.LookPath(t.Name)
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", t.Name, err)
	}
	return run(path, t.Name, t.Args(src, dst, size))
}

// Chain tries each tool in order and returns the name of the first that
// succeeds. If all fail, the returned error joins every attempt's error.
func Chain(tools []Tool, src, dst string, size int) (string, error) {
	if len(tools) == 0 {
		return "", fmt.Errorf("no converters configured")
	}
	var errs []error
	for _, t := range tools {
		err := t.Run(src, dst, size)
		if err == nil {
			return t.Name, nil
		}
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

// PackICO bundles the PNG at src into a multi-resolution ICO at dst using
// ImageMagick's icon:auto-resize.
func PackICO(src, dst string, sizes []int) error {
	path, err := exec.LookPath(Magick.Name)
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", Magick.Name, err)
	}
	return run(path, Magick.Name, PackICOArgs(src, dst, sizes))
}

// PackICOArgs returns the magick arguments PackICO uses.
func PackICOArgs(src, dst string, sizes []int) []string {
	s := make([]string, len(sizes))
	for i, n := range sizes {
		s[i] = strconv.Itoa(n)
	}
	return []string{src, "-define", "icon:auto-resize=" + strings.Join(s, ","), dst}
}

func run(path, name string, args []string) error {
	cmd := exec.Command(path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w\n%s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func geometry(size int) string {
	n := strconv.Itoa(size)
	return n + "x" + n
}
