package engine

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports the names of programs whose source files in a
// directory changed. Names are delivered on Reloads and have to be
// recompiled by the thread owning the GL context.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	reloads chan string
	done    chan struct{}
}

func WatchShaders(dir string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	sw := &ShaderWatcher{
		watcher: w,
		reloads: make(chan string, 16),
		done:    make(chan struct{}),
	}
	go sw.run()

	Logger().Info("watching shaders", "dir", dir)
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	defer close(sw.done)

	errs := sw.watcher.Errors
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				close(sw.reloads)
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			name, ok := shaderName(event.Name)
			if !ok {
				continue
			}

			select {
			case sw.reloads <- name:
			default:
				Logger().Warn("shader reload dropped", "program", name)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			Logger().Warn("shader watcher", "err", err)
		}
	}
}

func shaderName(path string) (string, bool) {
	ext := filepath.Ext(path)
	switch ext {
	case ".vert", ".frag", ".geom":
		return strings.TrimSuffix(filepath.Base(path), ext), true
	}
	return "", false
}

func (sw *ShaderWatcher) Reloads() <-chan string {
	return sw.reloads
}

func (sw *ShaderWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done
	return err
}
