// Package generate walks an icon manifest and produces every listed file
// with the active rasterizer, reporting each entry as it goes.
package generate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Mavwarf/appicon/internal/manifest"
	"github.com/Mavwarf/appicon/internal/paths"
	"github.com/Mavwarf/appicon/internal/raster"
)

// Result is the outcome of one manifest entry.
type Result struct {
	Platform manifest.Platform
	Entry    manifest.Entry
	Err      error
}

// Summary tallies a run.
type Summary struct {
	Succeeded []Result
	Failed    []Result
}

// OK reports whether every entry succeeded.
func (s Summary) OK() bool { return len(s.Failed) == 0 }

// Total returns the number of entries processed.
func (s Summary) Total() int { return len(s.Succeeded) + len(s.Failed) }

// Generator produces the files of a manifest under Root.
type Generator struct {
	Root       string
	Manifest   manifest.Manifest
	Rasterizer raster.Rasterizer
	Packer     raster.Packer // required for container entries
	Out        io.Writer
	Log        *slog.Logger
	Color      bool
}

// Run processes every entry in manifest order. A failed entry is reported
// and the walk continues with the next one.
func (g *Generator) Run() Summary {
	var sum Summary
	for _, grp := range g.Manifest {
		fmt.Fprintf(g.out(), "%s\n", g.bold(fmt.Sprintf("Generating %s icons...", grp.Platform.Label())))
		for _, e := range grp.Entries {
			start := time.Now()
			r := Result{Platform: grp.Platform, Entry: e}
			if e.Container() {
				r.Err = g.container(e)
			} else {
				r.Err = g.render(e)
			}
			g.log().Debug("entry done", "platform", grp.Platform, "path", e.Path, "size", e.Size,
				"elapsed", time.Since(start).Round(time.Millisecond), "ok", r.Err == nil)
			g.report(r)
			if r.Err != nil {
				sum.Failed = append(sum.Failed, r)
			} else {
				sum.Succeeded = append(sum.Succeeded, r)
			}
		}
	}
	g.summarize(sum)
	return sum
}

func (g *Generator) render(e manifest.Entry) error {
	dst := paths.Resolve(g.Root, e.Path)
	if err := paths.EnsureParent(dst); err != nil {
		return err
	}
	return g.Rasterizer.Render(e.Size, dst)
}

// container renders an intermediate PNG next to the project root and packs
// it into the icon container. The intermediate is removed only when packing
// succeeds so a failed conversion can be inspected.
func (g *Generator) container(e manifest.Entry) error {
	if g.Packer == nil {
		return errors.New("no icon packer configured")
	}
	tmp := paths.Resolve(g.Root, paths.IntermediateName)
	if err := paths.EnsureParent(tmp); err != nil {
		return err
	}
	if err := g.Rasterizer.Render(e.Size, tmp); err != nil {
		return fmt.Errorf("rendering intermediate: %w", err)
	}

	dst := paths.Resolve(g.Root, e.Path)
	if err := paths.EnsureParent(dst); err != nil {
		return err
	}
	if err := g.Packer.Pack(tmp, dst); err != nil {
		g.log().Warn("icon packing failed, keeping intermediate", "intermediate", tmp, "err", err)
		return fmt.Errorf("converting to icon (intermediate kept at %s): %w", tmp, err)
	}
	if err := os.Remove(tmp); err != nil {
		g.log().Warn("removing intermediate", "path", tmp, "err", err)
	}
	g.log().Debug("packed icon", "packer", g.Packer.Name(), "dst", dst)
	return nil
}

func (g *Generator) report(r Result) {
	if r.Err != nil {
		fmt.Fprintf(g.out(), "  %s %s\n    %v\n", g.red("✗"), r.Entry.Path, r.Err)
		return
	}
	fmt.Fprintf(g.out(), "  %s %s %s\n", g.green("✓"), r.Entry.Path, g.dim(fmt.Sprintf("(%dx%d)", r.Entry.Size, r.Entry.Size)))
}

func (g *Generator) summarize(s Summary) {
	line := fmt.Sprintf("Icon generation complete: %d succeeded, %d failed", len(s.Succeeded), len(s.Failed))
	if s.OK() {
		line = g.green(line)
	} else {
		line = g.red(line)
	}
	fmt.Fprintf(g.out(), "\n%s\n", line)
}

func (g *Generator) out() io.Writer {
	if g.Out == nil {
		return io.Discard
	}
	return g.Out
}

func (g *Generator) log() *slog.Logger {
	if g.Log == nil {
		return slog.Default()
	}
	return g.Log
}

func (g *Generator) ansi(code, s string) string {
	if !g.Color {
		return s
	}
	return code + s + "\033[0m"
}

func (g *Generator) bold(s string) string  { return g.ansi("\033[1m", s) }
func (g *Generator) dim(s string) string   { return g.ansi("\033[2m", s) }
func (g *Generator) green(s string) string { return g.ansi("\033[32m", s) }
func (g *Generator) red(s string) string   { return g.ansi("\033[31m", s) }
