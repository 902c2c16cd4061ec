package stride

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the file must stay quiet after a change before
// it is reloaded
const debounceDelay = 100 * time.Millisecond

// ConfigWatcher reloads a tuning file whenever it changes on disk, so
// movement constants can be tweaked while a game is running. Reloaded
// configs arrive on Configs; feed them to Character.SetConfig between
// ticks.
type ConfigWatcher struct {
	Configs chan Config
	Errors  chan error

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once
	path    string
}

// WatchConfig starts watching a tuning file. The containing directory is
// watched rather than the file itself: editors often replace the file on
// save.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		Configs: make(chan Config, 4),
		Errors:  make(chan error, 1),
		watcher: w,
		closeCh: make(chan struct{}),
		path:    abs,
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Configs and Errors stop receiving but stay open.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
	})
	return err
}

func (cw *ConfigWatcher) run() {
	// editors fire bursts of events per save (truncate, write, chmod); the
	// reload waits until the burst has settled so a half-written file is
	// never read
	var (
		debounce *time.Timer
		settled  <-chan time.Time
	)

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
			settled = debounce.C
		case <-settled:
			settled = nil

			cfg, err := LoadConfig(cw.path)
			if err != nil {
				select {
				case cw.Errors <- err:
				default:
				}
				continue
			}
			select {
			case cw.Configs <- cfg:
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case cw.Errors <- err:
			default:
			}
		case <-cw.closeCh:
			return
		}
	}
}
