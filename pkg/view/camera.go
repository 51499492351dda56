package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultFieldOfView = 0.25 * math.Pi
	defaultMaxZoom     = 20.5
	defaultMaxPitch    = math.Pi / 2

	// horizonDistanceFactor bounds ground-plane ray hits near or beyond the
	// horizon to a multiple of the world extent of one tile at the current
	// zoom, matching the distance at which content stops being drawn.
	horizonDistanceFactor = 64.0
)

// Camera is a perspective view onto the mercator plane. It tracks a center
// position in projected meters plus zoom, yaw and pitch, and lazily
// rebuilds its matrices when queried.
//
// Camera is not safe for concurrent use; callers serialize access the same
// way they serialize the gesture engine.
type Camera struct {
	width, height float64
	pixelScale    float64

	// Center of the view in projected meters.
	posX, posY float64

	zoom    float64
	minZoom float64
	maxZoom float64

	yaw      float64 // radians
	pitch    float64 // radians, 0 = straight down
	maxPitch float64 // radians

	fov float64

	eye         mgl64.Vec3
	viewProj    mgl64.Mat4
	invViewProj mgl64.Mat4
	dirty       bool
}

// NewCamera creates a camera with the given viewport in device pixels,
// positioned at (0°, 0°) at zoom 0, looking straight down.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		width:      width,
		height:     height,
		pixelScale: 1,
		minZoom:    0,
		maxZoom:    defaultMaxZoom,
		maxPitch:   defaultMaxPitch,
		fov:        defaultFieldOfView,
		dirty:      true,
	}
}

// SetViewport resizes the viewable area in device pixels.
func (c *Camera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.dirty = true
}

// SetPixelScale sets the ratio of hardware pixels to logical pixels.
func (c *Camera) SetPixelScale(scale float64) {
	if scale <= 0 {
		return
	}
	c.pixelScale = scale
	c.dirty = true
}

// SetPosition moves the view center to the given geographic coordinate.
func (c *Camera) SetPosition(lng, lat float64) {
	c.posX, c.posY = LngLatToMeters(lng, lat)
}

// LngLat returns the geographic coordinate at the view center.
func (c *Camera) LngLat() (lng, lat float64) {
	return MetersToLngLat(c.posX, c.posY)
}

// SetZoom sets the zoom level, clamped to the configured range.
func (c *Camera) SetZoom(z float64) {
	c.zoom = clamp(z, c.minZoom, c.maxZoom)
	c.dirty = true
}

// SetMinZoom clamps the lower zoom bound to >= 0.
func (c *Camera) SetMinZoom(z float64) {
	c.minZoom = math.Max(0, math.Min(z, c.maxZoom))
	c.SetZoom(c.zoom)
}

// SetMaxZoom clamps the upper zoom bound.
func (c *Camera) SetMaxZoom(z float64) {
	c.maxZoom = math.Max(c.minZoom, math.Min(z, defaultMaxZoom))
	c.SetZoom(c.zoom)
}

// SetMaxPitch sets the maximum pitch angle in radians.
func (c *Camera) SetMaxPitch(radians float64) {
	c.maxPitch = clamp(radians, 0, defaultMaxPitch)
	c.pitch = clamp(c.pitch, 0, c.maxPitch)
	c.dirty = true
}

// SetYaw sets the absolute yaw angle in radians.
func (c *Camera) SetYaw(radians float64) {
	c.yaw = normalizeRadians(radians)
	c.dirty = true
}

// SetPitch sets the absolute pitch angle in radians, clamped to
// [0, maxPitch].
func (c *Camera) SetPitch(radians float64) {
	c.pitch = clamp(radians, 0, c.maxPitch)
	c.dirty = true
}

// Width returns the viewport width in device pixels.
func (c *Camera) Width() float64 { return c.width }

// Height returns the viewport height in device pixels.
func (c *Camera) Height() float64 { return c.height }

// PixelScale returns the hardware-to-logical pixel ratio.
func (c *Camera) PixelScale() float64 { return c.pixelScale }

// Zoom returns the current zoom level.
func (c *Camera) Zoom() float64 { return c.zoom }

// Yaw returns the current yaw in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the current pitch in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// MaxPitch returns the maximum pitch in radians.
func (c *Camera) MaxPitch() float64 { return c.maxPitch }

// PixelsPerMeter returns how many logical pixels one mercator meter spans
// at the current zoom.
func (c *Camera) PixelsPerMeter() float64 {
	return TileSize / MetersPerTile(c.zoom)
}

// Translate moves the view center in projected meters, wrapping across the
// antimeridian and clamping at the mercator poles.
func (c *Camera) Translate(dx, dy float64) {
	c.posX = wrapMeters(c.posX + dx)
	c.posY = clamp(c.posY+dy, -EarthHalfCircumferenceMeters, EarthHalfCircumferenceMeters)
}

// ZoomBy changes zoom by the given number of levels.
func (c *Camera) ZoomBy(delta float64) {
	c.SetZoom(c.zoom + delta)
}

// YawBy changes the yaw angle by the given amount in radians.
func (c *Camera) YawBy(radians float64) {
	c.SetYaw(c.yaw + radians)
}

// PitchBy changes the pitch angle by the given amount in radians.
func (c *Camera) PitchBy(radians float64) {
	c.SetPitch(c.pitch + radians)
}

// ScreenToGroundPlane casts a ray through the given screen pixel and
// intersects it with the z = elev plane. The result is in projected meters
// relative to the view center. Rays above the horizon are clamped to the
// maximum draw distance.
func (c *Camera) ScreenToGroundPlane(x, y, elev float64) (mx, my float64) {
	if c.dirty {
		c.updateMatrices()
	}

	clip := mgl64.Vec4{
		2*x/c.width - 1,
		1 - 2*y/c.height,
		-1,
		1,
	}
	world := c.invViewProj.Mul4x1(clip)
	if world.W() != 0 {
		world = world.Mul(1 / world.W())
	}

	origin := mgl64.Vec4{c.eye.X(), c.eye.Y(), c.eye.Z(), 1}
	ray := world.Sub(origin)

	t := 0.0
	if ray.Z() != 0 {
		t = -(origin.Z() - elev) / ray.Z()
	}
	ray = ray.Mul(math.Abs(t))

	// Clamp hits beyond the horizon (t < 0) or past the draw distance.
	maxDist := horizonDistanceFactor * MetersPerTile(c.zoom)
	rayXY := math.Hypot(ray.X(), ray.Y())
	if (rayXY > maxDist || t < 0) && rayXY > 0 {
		ray = ray.Mul(maxDist / rayXY)
	}

	return ray.X() + origin.X(), ray.Y() + origin.Y()
}

// ScreenPositionToLngLat returns the geographic coordinate and elevation
// under the given screen pixel. Without terrain the elevation is always 0.
func (c *Camera) ScreenPositionToLngLat(x, y float64) (lng, lat, elev float64) {
	mx, my := c.ScreenToGroundPlane(x, y, 0)
	lng, lat = MetersToLngLat(wrapMeters(c.posX+mx), clamp(c.posY+my,
		-EarthHalfCircumferenceMeters, EarthHalfCircumferenceMeters))
	return lng, lat, 0
}

// updateMatrices rebuilds the look-at and projection matrices. The camera
// space is centered on the view position; the eye orbits the origin by
// pitch and yaw at the height that makes one tile span TileSize*pixelScale
// screen pixels.
func (c *Camera) updateMatrices() {
	aspect := c.width / c.height

	screenTileSize := TileSize * c.pixelScale
	worldHeight := c.height * EarthCircumferenceMeters / screenTileSize

	// Apply the intended field of view to the wider dimension.
	fovy := c.fov
	if aspect > 1 {
		fovy = c.fov / aspect
	}

	camHeight := math.Exp2(-c.zoom) * worldHeight * 0.5 / math.Tan(fovy*0.5)

	c.pitch = clamp(c.pitch, 0, c.maxPitch)

	rot := mgl64.Rotate3DZ(c.yaw).Mul3(mgl64.Rotate3DX(c.pitch))
	c.eye = rot.Mul3x1(mgl64.Vec3{0, 0, camHeight})
	up := rot.Mul3x1(mgl64.Vec3{0, 1, 0})

	viewMat := mgl64.LookAtV(c.eye, mgl64.Vec3{0, 0, 0}, up)

	near := camHeight / 50
	far := 2 * camHeight / math.Max(1e-6, math.Cos(c.pitch+0.5*fovy))
	maxFar := horizonDistanceFactor * MetersPerTile(c.zoom)
	if far > maxFar || far < 0 {
		far = maxFar
	}
	if far <= near {
		far = near * 2
	}

	proj := mgl64.Perspective(fovy, aspect, near, far)

	c.viewProj = proj.Mul4(viewMat)
	c.invViewProj = c.viewProj.Inv()
	c.dirty = false
}

func normalizeRadians(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
