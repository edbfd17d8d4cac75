package core

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
	"github.com/mixtli/dungeon-lab-sub011/uvtt"
)

func uvttBytes(t *testing.T, name string) []byte {
	t.Helper()
	data, err := uvtt.Marshal(&mapdata.MapData{
		Name: name,
		Metadata: &mapdata.MapMetadata{
			WorldUnitsPerGridCell: 50,
			Dimensions:            mapdata.GridDimensions{Width: 10, Height: 10},
			ImageDimensions:       mapdata.PixelDimensions{Width: 500, Height: 500},
		},
		Walls: []mapdata.Wall{{
			ID:             mapdata.NewID(),
			Points:         []float64{0, 0, 500, 0},
			BlocksMovement: true,
			Visible:        true,
		}},
		Environment: mapdata.DefaultEnvironment(),
	})
	require.NoError(t, err)
	return data
}

func TestLoadAllMaps(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/crypt.uvtt":    &fstest.MapFile{Data: uvttBytes(t, "crypt")},
		"maps/arena.dd2vtt":  &fstest.MapFile{Data: uvttBytes(t, "arena")},
		"maps/readme.txt":    &fstest.MapFile{Data: []byte("not a map")},
		"maps/thumbnail.png": &fstest.MapFile{Data: []byte{0x89}},
	}

	maps, names, err := LoadAllMaps(fsys, "maps")
	require.NoError(t, err)

	assert.Equal(t, []string{"arena", "crypt"}, names, "names come back sorted")
	require.Contains(t, maps, "crypt")
	require.Contains(t, maps, "arena")
	assert.Len(t, maps["crypt"].Walls, 1)
}

func TestLoadAllMapsEmptyDir(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/readme.txt": &fstest.MapFile{Data: []byte("nothing here")},
	}

	_, _, err := LoadAllMaps(fsys, "maps")
	assert.Error(t, err)
}

func TestLoadAllMapsBadDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/broken.uvtt": &fstest.MapFile{Data: []byte("{not json")},
	}

	_, _, err := LoadAllMaps(fsys, "maps")
	assert.Error(t, err)
}

func TestMapWatcherDeliversLastWrite(t *testing.T) {
	dir := t.TempDir()

	got := make(chan *mapdata.MapData, 4)
	mw, err := WatchMaps(dir, func(m *mapdata.MapData) { got <- m })
	require.NoError(t, err)
	defer mw.Close()

	// Two quick writes mimic an editor save: a truncated document followed
	// by the completed one inside the debounce window. Only the settled file
	// may be decoded.
	path := filepath.Join(dir, "crypt.uvtt")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(path, uvttBytes(t, "crypt"), 0o644))

	select {
	case m := <-got:
		assert.Equal(t, "crypt", m.Name)
		assert.Len(t, m.Walls, 1)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never delivered the saved map")
	}
}

func TestIsMapFile(t *testing.T) {
	assert.True(t, isMapFile("crypt.uvtt"))
	assert.True(t, isMapFile("crypt.DD2VTT"))
	assert.False(t, isMapFile("crypt.tmx"))
	assert.False(t, isMapFile("crypt"))
}
