package fetcher

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// CookieFile provides a cookies file configured by path. The file is watched
// so it can be created, replaced or removed while the server is running; it
// is only handed to yt-dlp while it exists.
type CookieFile struct {
	path    string
	present atomic.Bool
	watcher *fsnotify.Watcher
	done    chan struct{}
	log     zerolog.Logger
}

// WatchCookieFile starts watching path. An empty path yields a CookieFile
// that never supplies cookies.
func WatchCookieFile(path string, log zerolog.Logger) (*CookieFile, error) {
	cf := &CookieFile{
		path: path,
		done: make(chan struct{}),
		log:  log.With().Str("component", "cookies").Logger(),
	}
	if path == "" {
		close(cf.done)
		return cf, nil
	}
	cf.path = filepath.Clean(path)
	cf.refresh()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and secret mounts replace the file
	// rather than writing it in place.
	if err := w.Add(filepath.Dir(cf.path)); err != nil {
		w.Close()
		return nil, err
	}
	cf.watcher = w

	cf.log.Info().
		Str("path", cf.path).
		Bool("present", cf.present.Load()).
		Msg("cookies file watcher initialized")

	go cf.watchLoop()
	return cf, nil
}

// CookiesFile returns the configured path while the file exists.
func (cf *CookieFile) CookiesFile() string {
	if cf.present.Load() {
		return cf.path
	}
	return ""
}

// Configured reports whether a cookies path was set at all.
func (cf *CookieFile) Configured() bool {
	return cf.path != ""
}

// Close stops the watcher.
func (cf *CookieFile) Close() error {
	if cf.watcher == nil {
		return nil
	}
	err := cf.watcher.Close()
	<-cf.done
	return err
}

func (cf *CookieFile) watchLoop() {
	defer close(cf.done)
	for {
		select {
		case ev, ok := <-cf.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cf.path {
				continue
			}
			was := cf.present.Load()
			cf.refresh()
			if now := cf.present.Load(); now != was {
				cf.log.Info().Bool("present", now).Str("op", ev.Op.String()).Msg("cookies file changed")
			}
		case err, ok := <-cf.watcher.Errors:
			if !ok {
				return
			}
			cf.log.Warn().Err(err).Msg("cookies watcher error")
		}
	}
}

func (cf *CookieFile) refresh() {
	info, err := os.Stat(cf.path)
	cf.present.Store(err == nil && !info.IsDir())
}
