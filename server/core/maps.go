package core

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
	"github.com/mixtli/dungeon-lab-sub011/uvtt"
)

func isMapFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == uvtt.ExtUVTT || ext == uvtt.ExtDD2VTT
}

// LoadAllMaps discovers all .uvtt/.dd2vtt documents in dir within fsys,
// decodes each, and returns them keyed by stem name plus a sorted name list.
func LoadAllMaps(fsys fs.FS, dir string) (map[string]*mapdata.MapData, []string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read maps dir %s: %w", dir, err)
	}

	maps := make(map[string]*mapdata.MapData)
	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !isMapFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		m, err := uvtt.ReadFile(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		maps[m.Name] = m
		names = append(names, m.Name)
	}

	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no .uvtt or .dd2vtt files found in %s", dir)
	}

	sort.Strings(names)
	return maps, names, nil
}

// MapWatcher watches a maps directory and invokes a callback with freshly
// decoded map data whenever a UVTT document is written or created. Editors
// tend to fire several writes per save, so each event arms a 100ms timer
// that later events reset; the file is decoded only once it has been quiet
// for the full window, ensuring the last write wins.
type MapWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	onMap   func(m *mapdata.MapData)
	closeCh chan struct{}
	once    sync.Once
}

// WatchMaps starts watching dir. The callback runs on the watcher goroutine.
func WatchMaps(dir string, onMap func(m *mapdata.MapData)) (*MapWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	mw := &MapWatcher{
		watcher: w,
		dir:     dir,
		onMap:   onMap,
		closeCh: make(chan struct{}),
	}
	go mw.run()
	return mw, nil
}

// Close stops the watcher. Safe to call more than once.
func (mw *MapWatcher) Close() error {
	var err error
	mw.once.Do(func() {
		close(mw.closeCh)
		err = mw.watcher.Close()
	})
	return err
}

const reloadDebounce = 100 * time.Millisecond

func (mw *MapWatcher) run() {
	pending := make(map[string]*time.Timer)
	settled := make(chan string)
	for {
		select {
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isMapFile(event.Name) {
				continue
			}
			if timer, ok := pending[event.Name]; ok {
				timer.Reset(reloadDebounce)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(reloadDebounce, func() {
				select {
				case settled <- name:
				case <-mw.closeCh:
				}
			})
		case name := <-settled:
			delete(pending, name)
			mw.reload(name)
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[maps] watcher error: %v", err)
		case <-mw.closeCh:
			return
		}
	}
}

func (mw *MapWatcher) reload(path string) {
	rel, err := filepath.Rel(mw.dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	m, err := uvtt.ReadFile(os.DirFS(mw.dir), rel)
	if err != nil {
		log.Printf("[maps] reload %s failed: %v", path, err)
		return
	}
	log.Printf("[maps] reloaded %q (%d walls, %d doors, %d objects, %d lights)",
		m.Name, len(m.Walls), len(m.Doors), len(m.Objects), len(m.Lights))
	mw.onMap(m)
}
