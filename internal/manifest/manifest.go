// Package manifest holds the table of icon files a Flutter project needs,
// grouped by target platform.
package manifest

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// MaxSize is the largest icon edge any platform asks for.
const MaxSize = 1024

// ContainerMaxSize is the largest edge an .ico entry can hold.
const ContainerMaxSize = 256

// Platform names a target platform group.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
	MacOS   Platform = "macos"
	Web     Platform = "web"
	Windows Platform = "windows"
)

// Order is the fixed order in which platform groups are generated.
var Order = []Platform{Android, IOS, MacOS, Web, Windows}

var labels = map[Platform]string{
	Android: "Android",
	IOS:     "iOS",
	MacOS:   "macOS",
	Web:     "Web",
	Windows: "Windows",
}

// Label returns the display name used in console output.
func (p Platform) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return string(p)
}

// ParsePlatform validates a platform key.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := labels[p]; !ok {
		return "", fmt.Errorf("unknown platform %q (want one of %s)", s, joinOrder())
	}
	return p, nil
}

// Entry is one output file: a slash-separated path relative to the project
// root and the square pixel size it must have.
type Entry struct {
	Path string `json:"path" yaml:"path"`
	Size int    `json:"size" yaml:"size"`
}

// Container reports whether the entry is an icon-container file (.ico)
// rather than a plain PNG.
func (e Entry) Container() bool {
	return strings.EqualFold(path.Ext(e.Path), ".ico")
}

// Group is the ordered list of entries for one platform.
type Group struct {
	Platform Platform
	Entries  []Entry
}

// Manifest is the ordered set of platform groups.
type Manifest []Group

const (
	androidRes = "android/app/src/main/res"
	iosSet     = "ios/Runner/Assets.xcassets/AppIcon.appiconset"
	macosSet   = "macos/Runner/Assets.xcassets/AppIcon.appiconset"
)

// Default returns the built-in manifest. The returned value is a fresh copy.
func Default() Manifest {
	return Manifest{
		{Android, []Entry{
			{androidRes + "/mipmap-mdpi/ic_launcher.png", 48},
			{androidRes + "/mipmap-hdpi/ic_launcher.png", 72},
			{androidRes + "/mipmap-xhdpi/ic_launcher.png", 96},
			{androidRes + "/mipmap-xxhdpi/ic_launcher.png", 144},
			{androidRes + "/mipmap-xxxhdpi/ic_launcher.png", 192},
		}},
		{IOS, []Entry{
			{iosSet + "/Icon-App-20x20@1x.png", 20},
			{iosSet + "/Icon-App-20x20@2x.png", 40},
			{iosSet + "/Icon-App-20x20@3x.png", 60},
			{iosSet + "/Icon-App-29x29@1x.png", 29},
			{iosSet + "/Icon-App-29x29@2x.png", 58},
			{iosSet + "/Icon-App-29x29@3x.png", 87},
			{iosSet + "/Icon-App-40x40@1x.png", 40},
			{iosSet + "/Icon-App-40x40@2x.png", 80},
			{iosSet + "/Icon-App-40x40@3x.png", 120},
			{iosSet + "/Icon-App-60x60@2x.png", 120},
			{iosSet + "/Icon-App-60x60@3x.png", 180},
			{iosSet + "/Icon-App-76x76@1x.png", 76},
			{iosSet + "/Icon-App-76x76@2x.png", 152},
			{iosSet + "/Icon-App-83.5x83.5@2x.png", 167},
			{iosSet + "/Icon-App-1024x1024@1x.png", 1024},
		}},
		{MacOS, []Entry{
			{macosSet + "/app_icon_16.png", 16},
			{macosSet + "/app_icon_32.png", 32},
			{macosSet + "/app_icon_64.png", 64},
			{macosSet + "/app_icon_128.png", 128},
			{macosSet + "/app_icon_256.png", 256},
			{macosSet + "/app_icon_512.png", 512},
			{macosSet + "/app_icon_1024.png", 1024},
		}},
		{Web, []Entry{
			{"web/favicon.png", 32},
			{"web/icons/Icon-192.png", 192},
			{"web/icons/Icon-512.png", 512},
			{"web/icons/Icon-maskable-192.png", 192},
			{"web/icons/Icon-maskable-512.png", 512},
		}},
		{Windows, []Entry{
			{"windows/runner/resources/app_icon.ico", 256},
		}},
	}
}

// FromMap builds a manifest from a platform-keyed table, as found in config
// files. Groups are ordered by Order regardless of map iteration order.
func FromMap(m map[string][]Entry) (Manifest, error) {
	byPlatform := make(map[Platform][]Entry, len(m))
	for k, entries := range m {
		p, err := ParsePlatform(k)
		if err != nil {
			return nil, err
		}
		if _, dup := byPlatform[p]; dup {
			return nil, fmt.Errorf("platform %q listed twice", p)
		}
		byPlatform[p] = entries
	}
	var out Manifest
	for _, p := range Order {
		if entries, ok := byPlatform[p]; ok {
			out = append(out, Group{Platform: p, Entries: append([]Entry(nil), entries...)})
		}
	}
	return out, nil
}

// Only returns the groups whose platform is listed, keeping manifest order.
// An empty list returns m unchanged.
func (m Manifest) Only(platforms ...Platform) Manifest {
	if len(platforms) == 0 {
		return m
	}
	want := make(map[Platform]bool, len(platforms))
	for _, p := range platforms {
		want[p] = true
	}
	var out Manifest
	for _, g := range m {
		if want[g.Platform] {
			out = append(out, g)
		}
	}
	return out
}

// Len returns the total number of entries.
func (m Manifest) Len() int {
	n := 0
	for _, g := range m {
		n += len(g.Entries)
	}
	return n
}

// Validate checks the manifest invariants: known, non-repeated platforms;
// sizes in 1..MaxSize (1..ContainerMaxSize for .ico); relative paths that
// stay inside the project root; and no two entries naming the same file.
func (m Manifest) Validate() error {
	seenPlatform := map[Platform]bool{}
	seenPath := map[string]Platform{}
	for _, g := range m {
		if _, ok := labels[g.Platform]; !ok {
			return fmt.Errorf("unknown platform %q", g.Platform)
		}
		if seenPlatform[g.Platform] {
			return fmt.Errorf("platform %q listed twice", g.Platform)
		}
		seenPlatform[g.Platform] = true

		for _, e := range g.Entries {
			if e.Size < 1 || e.Size > MaxSize {
				return fmt.Errorf("%s: %s: size %d out of range 1-%d", g.Platform, e.Path, e.Size, MaxSize)
			}
			if e.Container() && e.Size > ContainerMaxSize {
				return fmt.Errorf("%s: %s: size %d too large for an icon container (max %d)", g.Platform, e.Path, e.Size, ContainerMaxSize)
			}
			clean, err := cleanPath(e.Path)
			if err != nil {
				return fmt.Errorf("%s: %w", g.Platform, err)
			}
			key := strings.ToLower(clean)
			if other, dup := seenPath[key]; dup {
				return fmt.Errorf("%s: %s collides with an entry of %s", g.Platform, e.Path, other)
			}
			seenPath[key] = g.Platform
		}
	}
	return nil
}

func cleanPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("empty path")
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if path.IsAbs(p) || (len(p) > 1 && p[1] == ':') {
		return "", fmt.Errorf("%s: path must be relative to the project root", p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%s: path escapes the project root", p)
	}
	return clean, nil
}

func joinOrder() string {
	names := make([]string, 0, len(Order))
	for _, p := range Order {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
