package mapcache_test

import (
	"encoding/json"
	"testing"

	"github.com/fblackburn/mapcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	for _, name := range []string{"msgpack", "json"} {
		t.Run(name, func(t *testing.T) {
			sc, err := mapcache.SnapshotCodecByName(name)
			require.NoError(t, err)
			c := mapcache.New(mapcache.Config{SnapshotCodec: sc})

			g, table, err := c.Unmarshal([]byte(`{"grid":["!# ","\u0080!!"],"data":{"a":{"v":1},"b":null,"c":3}}`))
			require.NoError(t, err)

			b, err := c.MarshalSnapshot(g, table)
			require.NoError(t, err)

			g2, table2, err := c.UnmarshalSnapshot(b)
			require.NoError(t, err)
			assert.Equal(t, g, g2)
			require.Len(t, table2, 3)
			assert.Equal(t, "a", table2[0].Key)
			assert.JSONEq(t, `{"v":1}`, string(table2[0].Payload))
			assert.Equal(t, int64(1), c.Stats().Snapshots)
		})
	}
}

func TestSnapshot_DoesNotCompact(t *testing.T) {
	c := mapcache.New(mapcache.Config{})
	g, err := mapcache.NewGrid(1, 1)
	require.NoError(t, err)
	g.SetFeature(0, 0, 3)
	ft := mapcache.FeatureTable{{Key: "x"}, {Key: "y"}, {Key: "z", Payload: json.RawMessage(`true`)}}

	b, err := c.MarshalSnapshot(g, ft)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Feature(0, 0))

	g2, ft2, err := c.UnmarshalSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, 3, g2.Feature(0, 0))
	assert.Len(t, ft2, 3)
}

func TestSnapshot_EmptyGrid(t *testing.T) {
	c := mapcache.New(mapcache.Config{})
	g, err := mapcache.NewGrid(0, 0)
	require.NoError(t, err)
	b, err := c.MarshalSnapshot(g, nil)
	require.NoError(t, err)

	g2, ft, err := c.UnmarshalSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, 0, g2.Width)
	assert.NotNil(t, g2.Cells)
	assert.Empty(t, ft)
}

func TestSnapshot_Errors(t *testing.T) {
	c := mapcache.New(mapcache.Config{})

	_, err := c.MarshalSnapshot(nil, nil)
	assert.ErrorIs(t, err, mapcache.ErrSnapshotEncode)

	_, err = c.MarshalSnapshot(&mapcache.Grid{Width: 3, Height: 3, Cells: []int32{1}}, nil)
	assert.ErrorIs(t, err, mapcache.ErrSnapshotEncode)

	_, _, err = c.UnmarshalSnapshot([]byte{0xc1})
	assert.ErrorIs(t, err, mapcache.ErrSnapshotDecode)

	jc, err := mapcache.SnapshotCodecByName("json")
	require.NoError(t, err)
	cj := mapcache.New(mapcache.Config{SnapshotCodec: jc})
	_, _, err = cj.UnmarshalSnapshot([]byte(`{"v":2,"w":0,"h":0}`))
	assert.ErrorIs(t, err, mapcache.ErrSnapshotDecode)
	_, _, err = cj.UnmarshalSnapshot([]byte(`{"v":1,"w":2,"h":2,"cells":[1]}`))
	assert.ErrorIs(t, err, mapcache.ErrSnapshotDecode)

	_, err = mapcache.SnapshotCodecByName("xml")
	assert.Error(t, err)
}
