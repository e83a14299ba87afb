package generate

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/Mavwarf/appicon/internal/ico"
	"github.com/Mavwarf/appicon/internal/manifest"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Problem describes an entry whose output is missing or has the wrong size.
type Problem struct {
	Platform manifest.Platform
	Entry    manifest.Entry
	Err      error
}

// Verify checks that every manifest entry exists under root and decodes to
// a square image of the listed size.
func Verify(root string, m manifest.Manifest) []Problem {
	var out []Problem
	for _, grp := range m {
		for _, e := range grp.Entries {
			if err := verifyEntry(root, e); err != nil {
				out = append(out, Problem{Platform: grp.Platform, Entry: e, Err: err})
			}
		}
	}
	return out
}

func verifyEntry(root string, e manifest.Entry) error {
	w, h, err := Dimensions(paths.Resolve(root, e.Path), e.Container())
	if err != nil {
		return err
	}
	if w != e.Size || h != e.Size {
		return fmt.Errorf("is %dx%d, want %dx%d", w, h, e.Size, e.Size)
	}
	return nil
}

// Dimensions reads the pixel size of a PNG, or of an ICO's primary image
// when container is true.
func Dimensions(path string, container bool) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	if container {
		return ico.Dimensions(f)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
