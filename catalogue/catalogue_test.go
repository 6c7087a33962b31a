package catalogue_test

import (
	"testing"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addStops(t *testing.T, c *catalogue.Catalogue, names ...string) []catalogue.StopID {
	ids := make([]catalogue.StopID, 0, len(names))
	for i, name := range names {
		id, err := c.AddStop(name, geo.Coordinates{Lat: 55.6 + 0.01*float64(i), Lng: 37.6})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestFindStop(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B")

	a, ok := c.FindStop("A")
	require.True(t, ok)
	assert.Equal(t, ids[0], a.ID)
	assert.Equal(t, "A", a.Name)
	assert.Same(t, a, c.Stop(ids[0]))

	b, ok := c.FindStop("B")
	require.True(t, ok)
	assert.NotSame(t, a, b)

	_, ok = c.FindStop("C")
	assert.False(t, ok)
	_, ok = c.FindLine("C")
	assert.False(t, ok)

	// 车站的指针在继续加入车站后保持有效
	addStops(t, c, "C", "D", "E", "F", "G", "H")
	again, _ := c.FindStop("A")
	assert.Same(t, a, again)
	assert.Equal(t, 8, c.StopCount())
}

func TestAddDuplicates(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B")

	_, err := c.AddStop("A", geo.Coordinates{})
	assert.ErrorIs(t, err, catalogue.ErrDuplicateStop)

	_, err = c.AddLine("1", ids, false)
	require.NoError(t, err)
	_, err = c.AddLine("1", ids, false)
	assert.ErrorIs(t, err, catalogue.ErrDuplicateLine)
}

func TestAddMalformedLine(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B")

	_, err := c.AddLine("empty", nil, false)
	assert.ErrorIs(t, err, catalogue.ErrMalformedLine)
	_, err = c.AddLine("unknown", []catalogue.StopID{ids[0], 42}, false)
	assert.ErrorIs(t, err, catalogue.ErrMalformedLine)
	_, err = c.AddLine("open loop", []catalogue.StopID{ids[0], ids[1]}, true)
	assert.ErrorIs(t, err, catalogue.ErrMalformedLine)
	_, err = c.AddLineByNames("ghost", []string{"A", "Z"}, false)
	assert.ErrorIs(t, err, catalogue.ErrStopNotFound)

	assert.Equal(t, 0, c.LineCount())
	lines, err := c.LinesServing("A")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestGetDistance(t *testing.T) {
	c := catalogue.New()
	ids := addStops(t, c, "A", "B", "C")
	a, b, cc := ids[0], ids[1], ids[2]

	require.NoError(t, c.SetDistance(a, b, 100))
	// 只声明一个方向时反向取相同的值
	assert.Equal(t, 100, c.GetDistance(a, b))
	assert.Equal(t, 100, c.GetDistance(b, a))

	// 两个方向分别声明
	require.NoError(t, c.SetDistance(b, a, 120))
	assert.Equal(t, 100, c.GetDistance(a, b))
	assert.Equal(t, 120, c.GetDistance(b, a))

	// 覆盖
	require.NoError(t, c.SetDistanceByNames("A", "B", 90))
	assert.Equal(t, 90, c.GetDistance(a, b))

	// 未声明
	assert.Equal(t, 0, c.GetDistance(a, cc))

	assert.ErrorIs(t, c.SetDistance(a, 99, 1), catalogue.ErrStopNotFound)
	assert.ErrorIs(t, c.SetDistanceByNames("A", "Z", 1), catalogue.ErrStopNotFound)
	assert.ErrorIs(t, c.SetDistance(a, cc, -5), catalogue.ErrInvalidDistance)
}

func TestLinesServing(t *testing.T) {
	c := catalogue.New()
	addStops(t, c, "A", "B", "C", "D")
	_, err := c.AddLineByNames("750", []string{"A", "B", "C"}, false)
	require.NoError(t, err)
	_, err = c.AddLineByNames("256", []string{"B", "C", "B"}, true)
	require.NoError(t, err)
	_, err = c.AddLineByNames("14", []string{"C", "A", "C"}, true)
	require.NoError(t, err)

	lines, err := c.LinesServing("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"14", "256", "750"}, lines)

	lines, err = c.LinesServing("B")
	require.NoError(t, err)
	assert.Equal(t, []string{"256", "750"}, lines)

	lines, err = c.LinesServing("D")
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = c.LinesServing("Z")
	assert.ErrorIs(t, err, catalogue.ErrStopNotFound)
}

func TestSorted(t *testing.T) {
	c := catalogue.New()
	addStops(t, c, "C", "A", "B")
	_, err := c.AddLineByNames("b", []string{"A", "B"}, false)
	require.NoError(t, err)
	_, err = c.AddLineByNames("a", []string{"B", "C"}, false)
	require.NoError(t, err)

	stops := c.AllStopsSorted()
	names := make([]string, 0)
	for _, s := range stops {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	// 重复调用结果相同
	assert.Equal(t, stops, c.AllStopsSorted())

	lines := c.AllLinesSorted()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Name)
	assert.Equal(t, "b", lines[1].Name)
	assert.Equal(t, lines, c.AllLinesSorted())
}

func TestEffectivePath(t *testing.T) {
	linear := &catalogue.Line{Stops: []catalogue.StopID{0, 1, 2}}
	assert.Equal(t, []catalogue.StopID{0, 1, 2, 1, 0}, linear.EffectivePath())

	single := &catalogue.Line{Stops: []catalogue.StopID{3}}
	assert.Equal(t, []catalogue.StopID{3}, single.EffectivePath())

	loop := &catalogue.Line{Stops: []catalogue.StopID{0, 1, 0}, IsRoundtrip: true}
	assert.Equal(t, []catalogue.StopID{0, 1, 0}, loop.EffectivePath())

	empty := &catalogue.Line{}
	assert.Empty(t, empty.EffectivePath())
}
