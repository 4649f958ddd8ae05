package service

import (
	"github.com/paulmach/orb/geojson"

	"github.com/gopalt/burnscar-backend-go/internal/ee"
)

// Sentinel-2 surface reflectance archive and the bands the indices use.
const (
	sentinelDataset = "COPERNICUS/S2_SR_HARMONIZED"

	bandRed  = "B4"  // red
	bandNIR  = "B8"  // near infrared
	bandSWIR = "B12" // shortwave infrared
	bandQA   = "QA60"

	cloudCoverProperty = "CLOUDY_PIXEL_PERCENTAGE"
	maxCloudCoverPct   = 40.0

	// QA60 bit flags.
	cloudBitMask  = 1 << 10
	cirrusBitMask = 1 << 11

	// Integer reflectance encoding divisor.
	reflectanceScale = 10000.0
)

// sentinelArchive queries the image archive for scenes over the ROI with
// acceptable per-image cloud cover.
func sentinelArchive(roi *geojson.Geometry) *ee.ImageCollection {
	return ee.NewImageCollection(sentinelDataset).
		FilterBounds(roi).
		Filter(ee.Lt(cloudCoverProperty, maxCloudCoverPct))
}

// maskClouds removes cloud- and cirrus-flagged pixels and rescales the
// integer reflectance encoding to unit fractions. A pixel is retained iff
// both quality bits are unset; masked pixels drop out of the median
// composite entirely rather than being substituted.
func maskClouds(img *ee.Image) *ee.Image {
	qa := img.Select(bandQA)
	clear := qa.BitwiseAnd(cloudBitMask).Eq(0).
		And(qa.BitwiseAnd(cirrusBitMask).Eq(0))
	return img.UpdateMask(clear).Divide(reflectanceScale)
}

// medianComposite cloud-masks every image in the window and reduces to the
// per-pixel median, suppressing residual cloud, shadow, and transient
// artifacts.
func medianComposite(col *ee.ImageCollection) *ee.Image {
	return col.Map(maskClouds).Median()
}

// dNBR is the pre/post difference of the normalized burn ratio
// (NIR vs SWIR). Positive values indicate vegetation and moisture loss.
func dNBR(pre, post *ee.Image) *ee.Image {
	return pre.NormalizedDifference(bandNIR, bandSWIR).
		Subtract(post.NormalizedDifference(bandNIR, bandSWIR)).
		Rename("dNBR")
}

// dNDVI is the pre/post difference of the normalized vegetation index
// (NIR vs red).
func dNDVI(pre, post *ee.Image) *ee.Image {
	return pre.NormalizedDifference(bandNIR, bandRed).
		Subtract(post.NormalizedDifference(bandNIR, bandRed)).
		Rename("dNDVI")
}

// bai is the Burned Area Index on the post-fire composite only. Near-zero
// denominators produce very large values, which the published formula
// expects.
func bai(post *ee.Image) *ee.Image {
	return ee.ParseExpression("1.0 / ((0.1 - RED)**2 + (0.06 - NIR)**2)", map[string]*ee.Image{
		"RED": post.Select(bandRed),
		"NIR": post.Select(bandNIR),
	}).Rename("BAI")
}
