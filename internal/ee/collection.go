package ee

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

const dateLayout = "2006-01-02"

// ImageCollection is a deferred stack of images from a catalog dataset.
type ImageCollection struct {
	expr *Expression
}

// NewImageCollection references a catalog dataset by id.
func NewImageCollection(id string) *ImageCollection {
	return &ImageCollection{expr: Call("ImageCollection.load", map[string]any{"id": id})}
}

// Expression exposes the underlying graph node.
func (c *ImageCollection) Expression() *Expression { return c.expr }

// FilterBounds keeps images intersecting the given geometry.
func (c *ImageCollection) FilterBounds(region *geojson.Geometry) *ImageCollection {
	return &ImageCollection{expr: Call("Collection.filterBounds", map[string]any{
		"collection": c.expr,
		"geometry":   region,
	})}
}

// FilterDate keeps images acquired in [start, end). The upper bound is
// exclusive; callers wanting an inclusive day range pass end plus one day.
func (c *ImageCollection) FilterDate(start, end time.Time) *ImageCollection {
	return &ImageCollection{expr: Call("Collection.filterDate", map[string]any{
		"collection": c.expr,
		"start":      start.Format(dateLayout),
		"end":        end.Format(dateLayout),
	})}
}

// Filter applies a metadata filter expression.
func (c *ImageCollection) Filter(filter *Expression) *ImageCollection {
	return &ImageCollection{expr: Call("Collection.filter", map[string]any{
		"collection": c.expr,
		"filter":     filter,
	})}
}

// Map applies a per-image algorithm over the collection. The algorithm is
// captured as a subgraph over a placeholder image argument, so the whole
// mapping stays a description until evaluation.
func (c *ImageCollection) Map(fn func(*Image) *Image) *ImageCollection {
	body := fn(&Image{expr: argumentRef("image")})
	return &ImageCollection{expr: Call("Collection.map", map[string]any{
		"collection": c.expr,
		"baseAlgorithm": map[string]any{
			"argumentNames": []string{"image"},
			"body":          body.expr,
		},
	})}
}

// Median reduces the collection to its per-pixel median composite.
func (c *ImageCollection) Median() *Image {
	return &Image{expr: Call("Collection.median", map[string]any{"collection": c.expr})}
}

// First takes the first image of the collection.
func (c *ImageCollection) First() *Image {
	return &Image{expr: Call("Collection.first", map[string]any{"collection": c.expr})}
}

// Size is a terminal node evaluating to the number of images.
func (c *ImageCollection) Size() *Expression {
	return Call("Collection.size", map[string]any{"collection": c.expr})
}

// FeatureCollection is a deferred vector dataset.
type FeatureCollection struct {
	expr *Expression
}

// NewFeatureCollection references a catalog vector dataset by id.
func NewFeatureCollection(id string) *FeatureCollection {
	return &FeatureCollection{expr: Call("FeatureCollection.load", map[string]any{"id": id})}
}

// Expression exposes the underlying graph node; evaluating it with
// ComputeFeatures yields the matching features as GeoJSON.
func (f *FeatureCollection) Expression() *Expression { return f.expr }

// Filter applies a metadata filter expression.
func (f *FeatureCollection) Filter(filter *Expression) *FeatureCollection {
	return &FeatureCollection{expr: Call("Collection.filter", map[string]any{
		"collection": f.expr,
		"filter":     filter,
	})}
}
