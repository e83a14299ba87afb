package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/convert"
	"github.com/Mavwarf/appicon/internal/generate"
	"github.com/Mavwarf/appicon/internal/logging"
	"github.com/Mavwarf/appicon/internal/manifest"
	"github.com/Mavwarf/appicon/internal/raster"
)

// env is the resolved state every command works from.
type env struct {
	cfg      config.Config
	root     string
	manifest manifest.Manifest
	log      *slog.Logger
	close    func()
}

func setup(opts options, stderr io.Writer) (*env, error) {
	cfg, _, err := config.Load(opts.configPath, ".")
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	m, err := cfg.ResolveManifest()
	if err != nil {
		return nil, err
	}
	m = m.Only(opts.only...)
	if len(m) == 0 {
		return nil, fmt.Errorf("no manifest entries for the selected platforms")
	}

	root := cfg.Root
	if opts.root != "" {
		root = opts.root
	}
	if root == "" {
		root = "."
	}

	logger, closer := logging.New(cfg.Log, stderr)
	e := &env{cfg: cfg, root: root, manifest: m, log: logger, close: func() {}}
	if closer != nil {
		e.close = func() { closer.Close() }
	}
	return e, nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func svgCmd(args []string, opts options, stdout, stderr io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(stderr, "Error: expected at most one SVG file\n")
		return 1
	}
	e, err := setup(opts, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer e.close()

	src := e.cfg.SourcePath(e.root)
	if len(args) == 1 {
		src = args[0]
	}
	if err := raster.CheckSource(src); err != nil {
		return fail(stderr, err)
	}

	tools, err := convert.ByName(e.cfg.Tools)
	if err != nil {
		return fail(stderr, err)
	}
	e.log.Debug("rendering from svg", "source", src, "root", e.root, "entries", e.manifest.Len())

	gen := &generate.Generator{
		Root:       e.root,
		Manifest:   e.manifest,
		Rasterizer: &raster.External{Source: src, Tools: tools, Builtin: e.cfg.BuiltinSVG, Log: e.log},
		Packer: raster.FallbackPacker{
			raster.MagickPacker{Sizes: e.cfg.ICOSizes},
			raster.BuiltinPacker{Sizes: e.cfg.ICOSizes},
		},
		Out:   stdout,
		Log:   e.log,
		Color: !noColor,
	}
	sum := gen.Run()
	if !sum.OK() {
		fmt.Fprintln(stdout, "Note: Make sure you have ImageMagick or Inkscape installed to generate the icons.")
		return 1
	}
	return 0
}

func drawCmd(opts options, stdout, stderr io.Writer) int {
	e, err := setup(opts, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer e.close()

	gen := &generate.Generator{
		Root:       e.root,
		Manifest:   e.manifest,
		Rasterizer: raster.Procedural{},
		Packer:     raster.BuiltinPacker{Sizes: e.cfg.ICOSizes},
		Out:        stdout,
		Log:        e.log,
		Color:      !noColor,
	}
	if sum := gen.Run(); !sum.OK() {
		return 1
	}
	return 0
}

func listCmd(opts options, stdout, stderr io.Writer) int {
	e, err := setup(opts, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer e.close()

	for _, g := range e.manifest {
		fmt.Fprintf(stdout, "%s:\n", g.Platform.Label())
		for _, en := range g.Entries {
			kind := "png"
			if en.Container() {
				kind = "ico"
			}
			fmt.Fprintf(stdout, "  %5d  %s  %s\n", en.Size, kind, en.Path)
		}
	}
	fmt.Fprintf(stdout, "\n%d icons in %d platforms\n", e.manifest.Len(), len(e.manifest))
	return 0
}

func checkCmd(opts options, stdout, stderr io.Writer) int {
	e, err := setup(opts, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer e.close()

	probs := generate.Verify(e.root, e.manifest)
	for _, p := range probs {
		fmt.Fprintf(stdout, "✗ %s: %v\n", p.Entry.Path, p.Err)
	}
	fmt.Fprintf(stdout, "%d of %d icons OK\n", e.manifest.Len()-len(probs), e.manifest.Len())
	if len(probs) > 0 {
		return 1
	}
	return 0
}
