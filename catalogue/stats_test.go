package catalogue_test

import (
	"testing"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearLineStats(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B", "C")
	require.NoError(t, c.SetDistance(ids[0], ids[1], 100))
	require.NoError(t, c.SetDistance(ids[1], ids[2], 150))
	_, err := c.AddLine("L", ids, false)
	require.NoError(t, err)

	stats, err := c.ComputeLineStats("L")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.StopCount)
	assert.Equal(t, 3, stats.UniqueStopCount)
	// 回程没有声明，使用去程的距离
	assert.Equal(t, 100+150+150+100, stats.RouteLength)

	a, _ := c.FindStop("A")
	b, _ := c.FindStop("B")
	cc, _ := c.FindStop("C")
	geoLength := 2 * (geo.ComputeDistance(a.Coordinates, b.Coordinates) + geo.ComputeDistance(b.Coordinates, cc.Coordinates))
	assert.InDelta(t, 500/geoLength, stats.Curvature, 1e-9)
}

func TestLinearLineStatsAsymmetric(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B", "C")
	require.NoError(t, c.SetDistance(ids[0], ids[1], 100))
	require.NoError(t, c.SetDistance(ids[1], ids[0], 130))
	require.NoError(t, c.SetDistance(ids[1], ids[2], 150))
	require.NoError(t, c.SetDistance(ids[2], ids[1], 170))
	_, err := c.AddLine("L", ids, false)
	require.NoError(t, err)

	stats, err := c.ComputeLineStats("L")
	require.NoError(t, err)
	assert.Equal(t, 100+150+170+130, stats.RouteLength)
}

func TestRoundtripLineStats(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B", "C")
	require.NoError(t, c.SetDistance(ids[0], ids[1], 100))
	require.NoError(t, c.SetDistance(ids[1], ids[2], 200))
	require.NoError(t, c.SetDistance(ids[2], ids[0], 300))
	_, err := c.AddLine("R", []catalogue.StopID{ids[0], ids[1], ids[2], ids[0]}, true)
	require.NoError(t, err)

	stats, err := c.ComputeLineStats("R")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.StopCount)
	assert.Equal(t, 3, stats.UniqueStopCount)
	assert.Equal(t, 600, stats.RouteLength)
	assert.Greater(t, stats.Curvature, 0.0)
}

func TestStatsZeroGeographicLength(t *testing.T) {
	c := catalogue.New()
	a, err := c.AddStop("A", geo.Coordinates{Lat: 10, Lng: 10})
	require.NoError(t, err)
	b, err := c.AddStop("B", geo.Coordinates{Lat: 10, Lng: 10})
	require.NoError(t, err)
	require.NoError(t, c.SetDistance(a, b, 50))
	_, err = c.AddLine("single", []catalogue.StopID{a}, false)
	require.NoError(t, err)
	_, err = c.AddLine("same place", []catalogue.StopID{a, b}, false)
	require.NoError(t, err)

	stats, err := c.ComputeLineStats("single")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StopCount)
	assert.Equal(t, 0, stats.RouteLength)
	assert.Equal(t, 1.0, stats.Curvature)

	stats, err = c.ComputeLineStats("same place")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.StopCount)
	assert.Equal(t, 100, stats.RouteLength)
	assert.Equal(t, 1.0, stats.Curvature)
}

func TestStatsNotFound(t *testing.T) {
	c := catalogue.New()
	_, err := c.ComputeLineStats("404")
	assert.ErrorIs(t, err, catalogue.ErrLineNotFound)
}
