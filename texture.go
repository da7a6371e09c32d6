package knob

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io/fs"

	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextureLoader resolves a texture path to an image handle. Knobs never load
// textures on their own; the host calls a loader once per path.
type TextureLoader interface {
	Load(path string) (*ebiten.Image, error)
}

// Textures holds the opaque handles a knob draws with. Nil handles fall back
// to solid colors.
type Textures struct {
	Face      *ebiten.Image
	Marker    *ebiten.Image
	MarkerOff *ebiten.Image
}

// FSTextureLoader loads images from a file system and caches one handle per
// path. Not safe for concurrent use.
type FSTextureLoader struct {
	fsys  fs.FS
	cache map[string]*ebiten.Image
}

// NewFSTextureLoader creates a loader reading from fsys (os.DirFS, embed.FS,
// ...).
func NewFSTextureLoader(fsys fs.FS) *FSTextureLoader {
	return &FSTextureLoader{fsys: fsys, cache: make(map[string]*ebiten.Image)}
}

// Load returns the image at path, decoding it on first use. Files whose
// content is not a PNG, JPEG or GIF image are rejected.
func (l *FSTextureLoader) Load(path string) (*ebiten.Image, error) {
	if img, ok := l.cache[path]; ok {
		return img, nil
	}
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("knob: read texture %s: %w", path, err)
	}
	src, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("knob: decode texture %s: %w", path, err)
	}
	img := ebiten.NewImageFromImage(src)
	l.cache[path] = img
	return img, nil
}

// Len returns the number of cached textures.
func (l *FSTextureLoader) Len() int { return len(l.cache) }

// errNotImage is returned for content that does not sniff as a supported image.
var errNotImage = errors.New("not a supported image")

// decodeImage sniffs data and decodes it with the registered image codecs.
func decodeImage(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotImage, err)
	}
	switch kind.Extension {
	case "png", "jpg", "gif":
	default:
		if kind == filetype.Unknown {
			return nil, errNotImage
		}
		return nil, fmt.Errorf("%w: %s", errNotImage, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadTextures resolves the texture paths of cfg through loader. Empty paths
// give nil handles. A path that fails to load is logged, left nil and
// reported in the joined error; the other textures are still returned.
func LoadTextures(loader TextureLoader, cfg Config) (Textures, error) {
	var t Textures
	var errs []error
	load := func(path string, dst **ebiten.Image) {
		if path == "" || loader == nil {
			return
		}
		img, err := loader.Load(path)
		if err != nil {
			logger().Warn("knob: texture unavailable, drawing solid color", "path", path, "error", err)
			errs = append(errs, err)
			return
		}
		*dst = img
	}
	load(cfg.FaceSource, &t.Face)
	load(cfg.MarkerSource, &t.Marker)
	load(cfg.MarkerOffSource, &t.MarkerOff)
	return t, errors.Join(errs...)
}
