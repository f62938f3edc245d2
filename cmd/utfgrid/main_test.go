package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fblackburn/mapcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tile = `{"grid":["!# ","## "],"keys":["","a","b"],"data":{"a":{"n":1},"b":{"n":2},"c":null}}`

func TestRun_Compact(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run("compact", nil, strings.NewReader(tile), &out))
	assert.Equal(t, `{"grid":["!# ","## "],"keys":["","a","b"],"data":{"a":{"n":1},"b":{"n":2}}}`+"\n", out.String())
}

func TestRun_Inspect(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run("inspect", []string{"-"}, strings.NewReader(tile), &out))
	assert.Contains(t, out.String(), "size:       3x2")
	assert.Contains(t, out.String(), "features:   3")
	assert.Contains(t, out.String(), "referenced: 2")
	assert.Contains(t, out.String(), "blank:      2")
}

func TestRun_Blank(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run("blank", []string{"2", "1"}, nil, &out))
	assert.Equal(t, `{"grid":["  "],"keys":[""],"data":{}}`+"\n", out.String())

	assert.Error(t, run("blank", []string{"2"}, nil, &out))
	assert.Error(t, run("blank", []string{"x", "1"}, nil, &out))
}

func TestRun_Snapshot(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run("snapshot", []string{"--codec=json"}, strings.NewReader(tile), &out))

	sc, err := mapcache.SnapshotCodecByName("json")
	require.NoError(t, err)
	g, table, err := mapcache.New(mapcache.Config{SnapshotCodec: sc}).UnmarshalSnapshot(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width)
	assert.Len(t, table, 3)

	assert.Error(t, run("snapshot", []string{"--codec=xml"}, strings.NewReader(tile), &out))
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run("compact", nil, strings.NewReader(`{"grid":[]}`), &out), mapcache.ErrMalformedWire)
	assert.Error(t, run("inspect", []string{"/does/not/exist.json"}, nil, &out))
	assert.Error(t, run("frobnicate", nil, nil, &out))
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run("version", nil, nil, &out))
	assert.Equal(t, "utfgrid "+mapcache.Version()+"\n", out.String())
}
