package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gopalt/burnscar-backend-go/internal/ee"
)

func TestSentinelArchiveFilters(t *testing.T) {
	graph := exprJSON(sentinelArchive(testROI()).Expression())

	assert.Contains(t, graph, sentinelDataset)
	assert.Contains(t, graph, `"functionName":"Collection.filterBounds"`)
	assert.Contains(t, graph, `"name":"CLOUDY_PIXEL_PERCENTAGE","value":40`)
}

func TestMedianCompositeMasksClouds(t *testing.T) {
	graph := exprJSON(medianComposite(ee.NewImageCollection(sentinelDataset)).Expression())

	assert.Contains(t, graph, `"functionName":"Collection.median"`)
	assert.Contains(t, graph, `"functionName":"Collection.map"`)
	assert.Contains(t, graph, `"functionName":"Image.bitwiseAnd"`)
	// Cloud bit 10 and cirrus bit 11 of the QA band.
	assert.Contains(t, graph, `"image2":1024`)
	assert.Contains(t, graph, `"image2":2048`)
	// Reflectance rescale to unit fractions.
	assert.Contains(t, graph, `"image2":10000`)
}

func TestIndexBandPairs(t *testing.T) {
	pre := ee.NewImageCollection(sentinelDataset).Median()
	post := ee.NewImageCollection(sentinelDataset).Median()

	dnbrGraph := exprJSON(dNBR(pre, post).Expression())
	assert.Contains(t, dnbrGraph, `"bandNames":["B8","B12"]`)
	assert.Contains(t, dnbrGraph, `"functionName":"Image.subtract"`)
	assert.Contains(t, dnbrGraph, `"names":["dNBR"]`)

	dndviGraph := exprJSON(dNDVI(pre, post).Expression())
	assert.Contains(t, dndviGraph, `"bandNames":["B8","B4"]`)
	assert.Contains(t, dndviGraph, `"names":["dNDVI"]`)

	baiGraph := exprJSON(bai(post).Expression())
	assert.Contains(t, baiGraph, `"expression":"1.0 / ((0.1 - RED)**2 + (0.06 - NIR)**2)"`)
	assert.Contains(t, baiGraph, `"names":["BAI"]`)
}
