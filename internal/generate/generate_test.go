package generate

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mavwarf/appicon/internal/ico"
	"github.com/Mavwarf/appicon/internal/logging"
	"github.com/Mavwarf/appicon/internal/manifest"
	"github.com/Mavwarf/appicon/internal/paths"
	"github.com/Mavwarf/appicon/internal/raster"
)

// fakeRasterizer writes a placeholder file for each render and fails for
// the sizes listed in failSizes.
type fakeRasterizer struct {
	failSizes map[int]bool
	calls     []string
}

func (f *fakeRasterizer) Name() string { return "fake" }

func (f *fakeRasterizer) Render(size int, dst string) error {
	f.calls = append(f.calls, dst)
	if f.failSizes[size] {
		return errors.New("converter exploded")
	}
	return os.WriteFile(dst, []byte("png"), paths.FilePerm)
}

type fakePacker struct {
	err  error
	srcs []string
}

func (p *fakePacker) Name() string { return "fake" }

func (p *fakePacker) Pack(src, dst string) error {
	p.srcs = append(p.srcs, src)
	if p.err != nil {
		return p.err
	}
	return os.WriteFile(dst, []byte("ico"), paths.FilePerm)
}

func newGen(root string, m manifest.Manifest, r raster.Rasterizer, p raster.Packer, out *bytes.Buffer) *Generator {
	return &Generator{Root: root, Manifest: m, Rasterizer: r, Packer: p, Out: out, Log: logging.Discard()}
}

func TestRunCreatesDirectoriesAndFiles(t *testing.T) {
	root := t.TempDir()
	m := manifest.Default().Only(manifest.Android, manifest.Web)
	var out bytes.Buffer
	sum := newGen(root, m, &fakeRasterizer{}, &fakePacker{}, &out).Run()

	if !sum.OK() || sum.Total() != m.Len() {
		t.Fatalf("summary = %d ok / %d failed, want %d ok", len(sum.Succeeded), len(sum.Failed), m.Len())
	}
	for _, g := range m {
		for _, e := range g.Entries {
			if !paths.Exists(paths.Resolve(root, e.Path)) {
				t.Errorf("%s not created", e.Path)
			}
		}
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	root := t.TempDir()
	m := manifest.Manifest{{Platform: manifest.Web, Entries: []manifest.Entry{
		{Path: "web/a.png", Size: 16},
		{Path: "web/b.png", Size: 32},
		{Path: "web/c.png", Size: 48},
	}}}
	r := &fakeRasterizer{failSizes: map[int]bool{32: true}}
	var out bytes.Buffer
	sum := newGen(root, m, r, nil, &out).Run()

	if len(r.calls) != 3 {
		t.Errorf("render calls = %d, want 3", len(r.calls))
	}
	if len(sum.Succeeded) != 2 || len(sum.Failed) != 1 {
		t.Fatalf("summary = %d ok / %d failed, want 2/1", len(sum.Succeeded), len(sum.Failed))
	}
	if sum.Failed[0].Entry.Path != "web/b.png" {
		t.Errorf("failed entry = %s", sum.Failed[0].Entry.Path)
	}
	if sum.OK() {
		t.Error("OK() = true with a failure")
	}
	if !paths.Exists(filepath.Join(root, "web", "c.png")) {
		t.Error("entry after the failure was not produced")
	}

	text := out.String()
	for _, want := range []string{
		"Generating Web icons...",
		"✓ web/a.png (16x16)",
		"✗ web/b.png",
		"converter exploded",
		"Icon generation complete: 2 succeeded, 1 failed",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunPlatformOrder(t *testing.T) {
	var out bytes.Buffer
	newGen(t.TempDir(), manifest.Default(), &fakeRasterizer{}, &fakePacker{}, &out).Run()
	text := out.String()
	last := -1
	for _, p := range manifest.Order {
		i := strings.Index(text, "Generating "+p.Label()+" icons...")
		if i < 0 {
			t.Fatalf("no header for %s", p)
		}
		if i < last {
			t.Errorf("%s header out of order", p)
		}
		last = i
	}
}

func windowsOnly() manifest.Manifest {
	return manifest.Default().Only(manifest.Windows)
}

func TestContainerDeletesIntermediateOnSuccess(t *testing.T) {
	root := t.TempDir()
	p := &fakePacker{}
	sum := newGen(root, windowsOnly(), &fakeRasterizer{}, p, &bytes.Buffer{}).Run()
	if !sum.OK() {
		t.Fatalf("failed: %v", sum.Failed[0].Err)
	}
	tmp := filepath.Join(root, paths.IntermediateName)
	if len(p.srcs) != 1 || p.srcs[0] != tmp {
		t.Errorf("packer sources = %v, want [%s]", p.srcs, tmp)
	}
	if paths.Exists(tmp) {
		t.Error("intermediate should be removed after successful packing")
	}
	if !paths.Exists(filepath.Join(root, "windows", "runner", "resources", "app_icon.ico")) {
		t.Error("ico not written")
	}
}

func TestContainerKeepsIntermediateOnFailure(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	sum := newGen(root, windowsOnly(), &fakeRasterizer{}, &fakePacker{err: errors.New("no magick")}, &out).Run()
	if sum.OK() {
		t.Fatal("expected failure")
	}
	tmp := filepath.Join(root, paths.IntermediateName)
	if !paths.Exists(tmp) {
		t.Error("intermediate should be kept when packing fails")
	}
	if !strings.Contains(sum.Failed[0].Err.Error(), "intermediate kept") {
		t.Errorf("err = %v", sum.Failed[0].Err)
	}
}

func TestContainerRenderFailure(t *testing.T) {
	root := t.TempDir()
	p := &fakePacker{}
	r := &fakeRasterizer{failSizes: map[int]bool{256: true}}
	sum := newGen(root, windowsOnly(), r, p, &bytes.Buffer{}).Run()
	if sum.OK() {
		t.Fatal("expected failure")
	}
	if len(p.srcs) != 0 {
		t.Error("packer must not run when the intermediate could not be rendered")
	}
}

func TestContainerWithoutPacker(t *testing.T) {
	sum := newGen(t.TempDir(), windowsOnly(), &fakeRasterizer{}, nil, &bytes.Buffer{}).Run()
	if sum.OK() || !strings.Contains(sum.Failed[0].Err.Error(), "no icon packer") {
		t.Errorf("summary = %+v", sum)
	}
}

func TestColorOutput(t *testing.T) {
	var out bytes.Buffer
	g := newGen(t.TempDir(), manifest.Manifest{{Platform: manifest.Web, Entries: []manifest.Entry{{Path: "a.png", Size: 8}}}},
		&fakeRasterizer{}, nil, &out)
	g.Color = true
	g.Run()
	if !strings.Contains(out.String(), "\033[32m✓\033[0m") {
		t.Errorf("expected green check mark, got %q", out.String())
	}
}

func hashTree(t *testing.T, root string, m manifest.Manifest) map[string][32]byte {
	t.Helper()
	out := map[string][32]byte{}
	for _, g := range m {
		for _, e := range g.Entries {
			data, err := os.ReadFile(paths.Resolve(root, e.Path))
			if err != nil {
				t.Fatal(err)
			}
			out[e.Path] = sha256.Sum256(data)
		}
	}
	return out
}

func TestProceduralEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("renders every icon size")
	}
	root := t.TempDir()
	m := manifest.Default()
	gen := newGen(root, m, raster.Procedural{}, raster.BuiltinPacker{Sizes: ico.DefaultSizes}, &bytes.Buffer{})

	sum := gen.Run()
	if !sum.OK() {
		t.Fatalf("first run failed: %v", sum.Failed[0].Err)
	}
	if probs := Verify(root, m); len(probs) != 0 {
		t.Fatalf("Verify: %s: %v", probs[0].Entry.Path, probs[0].Err)
	}
	if paths.Exists(filepath.Join(root, paths.IntermediateName)) {
		t.Error("intermediate left behind")
	}
	first := hashTree(t, root, m)

	if sum := gen.Run(); !sum.OK() {
		t.Fatalf("second run failed: %v", sum.Failed[0].Err)
	}
	second := hashTree(t, root, m)
	for p, h := range first {
		if second[p] != h {
			t.Errorf("%s changed between runs", p)
		}
	}
}
