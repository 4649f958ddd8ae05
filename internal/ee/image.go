package ee

import "github.com/paulmach/orb/geojson"

// Image is a deferred single- or multi-band raster. All methods return new
// images describing the derived raster; no pixels move until a terminal
// client call evaluates the graph remotely.
type Image struct {
	expr *Expression
}

// Expression exposes the underlying graph node for terminal evaluation.
func (i *Image) Expression() *Expression { return i.expr }

func imageCall(fn string, args map[string]any) *Image {
	return &Image{expr: Call(fn, args)}
}

// Select keeps only the named bands.
func (i *Image) Select(bands ...string) *Image {
	return imageCall("Image.select", map[string]any{"image": i.expr, "bands": bands})
}

// NormalizedDifference computes (b1 - b2) / (b1 + b2) per pixel.
func (i *Image) NormalizedDifference(b1, b2 string) *Image {
	return imageCall("Image.normalizedDifference", map[string]any{
		"image":     i.expr,
		"bandNames": []string{b1, b2},
	})
}

// Subtract computes the per-pixel difference with another image.
func (i *Image) Subtract(other *Image) *Image {
	return imageCall("Image.subtract", map[string]any{"image1": i.expr, "image2": other.expr})
}

// Divide divides every band by a constant.
func (i *Image) Divide(value float64) *Image {
	return imageCall("Image.divide", map[string]any{"image1": i.expr, "image2": value})
}

// BitwiseAnd masks the image against an integer bit pattern.
func (i *Image) BitwiseAnd(value int) *Image {
	return imageCall("Image.bitwiseAnd", map[string]any{"image1": i.expr, "image2": value})
}

// Eq tests each pixel for equality with a constant, yielding a 0/1 image.
func (i *Image) Eq(value float64) *Image {
	return imageCall("Image.eq", map[string]any{"image1": i.expr, "image2": value})
}

// Gt tests each pixel against a constant lower bound, yielding a 0/1 image.
func (i *Image) Gt(value float64) *Image {
	return imageCall("Image.gt", map[string]any{"image1": i.expr, "image2": value})
}

// And intersects two boolean images.
func (i *Image) And(other *Image) *Image {
	return imageCall("Image.and", map[string]any{"image1": i.expr, "image2": other.expr})
}

// Or unions two boolean images.
func (i *Image) Or(other *Image) *Image {
	return imageCall("Image.or", map[string]any{"image1": i.expr, "image2": other.expr})
}

// Rename renames the bands of the image in order.
func (i *Image) Rename(names ...string) *Image {
	return imageCall("Image.rename", map[string]any{"image": i.expr, "names": names})
}

// AddBands appends the bands of another image.
func (i *Image) AddBands(other *Image) *Image {
	return imageCall("Image.addBands", map[string]any{"dstImg": i.expr, "srcImg": other.expr})
}

// UpdateMask excludes pixels where mask is zero or masked. Excluded pixels
// carry no data downstream; they are not substituted.
func (i *Image) UpdateMask(mask *Image) *Image {
	return imageCall("Image.updateMask", map[string]any{"image": i.expr, "mask": mask.expr})
}

// SelfMask masks the image by its own non-zero values, turning a dense 0/1
// raster into a sparse presence raster.
func (i *Image) SelfMask() *Image {
	return imageCall("Image.selfMask", map[string]any{"image": i.expr})
}

// ParseExpression builds an image from an arithmetic formula over named
// input images, e.g. "1.0 / ((0.1 - RED)**2 + (0.06 - NIR)**2)".
func ParseExpression(formula string, inputs map[string]*Image) *Image {
	args := make(map[string]any, len(inputs))
	for name, img := range inputs {
		args[name] = img.expr
	}
	return imageCall("Image.expression", map[string]any{
		"expression": formula,
		"arguments":  args,
	})
}

// SampleParams controls spatial sampling of an image.
type SampleParams struct {
	Region     *geojson.Geometry
	Scale      float64 // ground resolution in meters
	NumPixels  int     // sampling cap, not an exhaustive enumeration
	Geometries bool    // keep per-sample point geometry
	DropNulls  bool    // skip fully masked pixels
	TileScale  float64 // remote-side parallelism hint
}

// Sample is a terminal node: evaluating it returns one point feature per
// sampled unmasked pixel, carrying the image's band values as properties.
func (i *Image) Sample(p SampleParams) *Expression {
	return Call("Image.sample", map[string]any{
		"image":      i.expr,
		"region":     p.Region,
		"scale":      p.Scale,
		"numPixels":  p.NumPixels,
		"geometries": p.Geometries,
		"dropNulls":  p.DropNulls,
		"tileScale":  p.TileScale,
	})
}
