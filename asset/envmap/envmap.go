// Package envmap provides sampled environment radiance sources for rays
// that escape the scene: an equirectangular 2D lookup and a cubemap lookup.
// Absent an environment binding the kernel falls back to its procedural sky
// gradient.
package envmap

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/mdouchement/hdr"

	// Radiance RGBE decoder for .hdr skydomes.
	_ "github.com/mdouchement/hdr/codec/rgbe"

	"github.com/landris006/path-tracer/log"
	"github.com/landris006/path-tracer/types"
)

var logger = log.New("envmap")

// Equirectangular samples a 2D latitude/longitude radiance texture by the
// azimuth and inclination of the ray direction.
type Equirectangular struct {
	width  int
	height int
	texels []types.Vec3
}

// Load reads an equirectangular environment texture. Radiance .hdr files
// keep their dynamic range; LDR formats are converted from 8-bit sRGB-ish
// values into [0,1] linear floats.
func Load(path string) (*Equirectangular, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("envmap: %v", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("envmap: could not decode %s: %v", path, err)
	}

	env := FromImage(img)
	logger.Infof("loaded %s environment map %s (%dx%d)", format, path, env.width, env.height)
	return env, nil
}

// FromImage converts a decoded image into a sampleable environment.
func FromImage(img image.Image) *Equirectangular {
	bounds := img.Bounds()
	env := &Equirectangular{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		texels: make([]types.Vec3, bounds.Dx()*bounds.Dy()),
	}

	hdrImg, isHDR := img.(hdr.Image)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isHDR {
				r, g, b, _ := hdrImg.HDRAt(x, y).HDRRGBA()
				env.texels[i] = types.Vec3{float32(r), float32(g), float32(b)}
			} else {
				r, g, b, _ := img.At(x, y).RGBA()
				env.texels[i] = types.Vec3{
					float32(r) / 65535.0,
					float32(g) / 65535.0,
					float32(b) / 65535.0,
				}
			}
			i++
		}
	}
	return env
}

// FromTexels wraps a raw radiance buffer; used by tests and procedural
// sources.
func FromTexels(width, height int, texels []types.Vec3) *Equirectangular {
	return &Equirectangular{width: width, height: height, texels: texels}
}

// Sample maps the direction to [0,1]x[0,1] texture space via its azimuth
// (atan2) and inclination (acos) and returns the nearest texel. Always
// finite, for every direction including the degenerate zero vector.
func (e *Equirectangular) Sample(dir types.Vec3) types.Vec3 {
	if e.width == 0 || e.height == 0 {
		return types.Vec3{}
	}

	d := dir.Normalize()
	if d.NearZero() {
		d = types.Vec3{0, 1, 0}
	}

	u := 0.5 + float32(math.Atan2(float64(d[2]), float64(d[0])))/(2*math.Pi)
	v := float32(math.Acos(float64(clamp(d[1], -1, 1)))) / math.Pi

	x := clampInt(int(u*float32(e.width)), 0, e.width-1)
	y := clampInt(int(v*float32(e.height)), 0, e.height-1)
	return e.texels[y*e.width+x]
}

// Cubemap face order follows the usual +X,-X,+Y,-Y,+Z,-Z layout.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Cubemap samples one of six square faces chosen by the dominant axis of
// the ray direction.
type Cubemap struct {
	size  int
	faces [6][]types.Vec3
}

// NewCubemap wraps six size x size radiance buffers.
func NewCubemap(size int, faces [6][]types.Vec3) (*Cubemap, error) {
	for i := range faces {
		if len(faces[i]) != size*size {
			return nil, fmt.Errorf("envmap: face %d holds %d texels, want %d", i, len(faces[i]), size*size)
		}
	}
	return &Cubemap{size: size, faces: faces}, nil
}

// Sample picks the face the direction points into and indexes it with the
// remaining two components projected onto the face plane.
func (c *Cubemap) Sample(dir types.Vec3) types.Vec3 {
	if c.size == 0 {
		return types.Vec3{}
	}

	d := dir.Normalize()
	if d.NearZero() {
		d = types.Vec3{0, 1, 0}
	}

	ax := abs32(d[0])
	ay := abs32(d[1])
	az := abs32(d[2])

	var face int
	var u, v, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d[0] > 0 {
			face, u, v = FacePosX, -d[2], -d[1]
		} else {
			face, u, v = FaceNegX, d[2], -d[1]
		}
	case ay >= az:
		ma = ay
		if d[1] > 0 {
			face, u, v = FacePosY, d[0], d[2]
		} else {
			face, u, v = FaceNegY, d[0], -d[2]
		}
	default:
		ma = az
		if d[2] > 0 {
			face, u, v = FacePosZ, d[0], -d[1]
		} else {
			face, u, v = FaceNegZ, -d[0], -d[1]
		}
	}

	// Project from [-ma, ma] to [0, 1].
	s := (u/ma + 1) * 0.5
	t := (v/ma + 1) * 0.5

	x := clampInt(int(s*float32(c.size)), 0, c.size-1)
	y := clampInt(int(t*float32(c.size)), 0, c.size-1)
	return c.faces[face][y*c.size+x]
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
