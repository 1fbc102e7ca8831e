package export

import (
	"encoding/base64"
	"io/fs"
	"path"
	"strings"

	"github.com/archetype-tools/proteusview/internal/render"
)

// DataURIResolver inlines referenced assets as base64 data URIs so the
// exported page carries its own images. References that cannot be read
// pass through unchanged; missing assets are a display concern, not a
// render failure.
type DataURIResolver struct {
	fsys fs.FS
}

// NewDataURIResolver resolves references against fsys, typically an
// os.DirFS over the document's asset directory.
func NewDataURIResolver(fsys fs.FS) *DataURIResolver {
	return &DataURIResolver{fsys: fsys}
}

func (r *DataURIResolver) Resolve(kind render.AssetKind, ref string) string {
	name := path.Clean(strings.TrimPrefix(ref, "/"))
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return ref
	}
	mime := mimeByExt(path.Ext(name))
	if mime == "" {
		return ref
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func mimeByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	}
	return ""
}

// BaseURLResolver prefixes references with a caller-supplied base URL,
// for on-screen display where the host application serves the assets.
type BaseURLResolver struct {
	IconBase string
	FileBase string
}

func (r *BaseURLResolver) Resolve(kind render.AssetKind, ref string) string {
	switch kind {
	case render.AssetIcon:
		return join(r.IconBase, ref)
	case render.AssetFile:
		return join(r.FileBase, ref)
	default:
		return ref
	}
}

func join(base, ref string) string {
	if base == "" {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}
