// Copyright (c) 2021 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Eclipse Public License 2.0 which is available at
// http://www.eclipse.org/legal/epl-2.0
//
// SPDX-License-Identifier: EPL-2.0

package panel

import (
	"fmt"
	"path/filepath"

	"github.com/eclipse-kanto/autopilot-panel/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// filterTarget is updated with every new filter read from the watched file.
type filterTarget interface {
	SetFilter(pattern string) error
	Filter() string
}

type filterWatch struct {
	file   string
	target filterTarget
}

func (o *filterWatch) update() {
	pattern, err := readTrimmed(o.file)
	if err != nil {
		logger.Warnf("failed to load filter file %s: %v", o.file, err)
		return
	}
	// empty content is seen while the file is being rewritten
	if pattern == "" || pattern == o.target.Filter() {
		return
	}
	if err := o.target.SetFilter(pattern); err != nil {
		logger.Errorf("keep filter %q: %v", o.target.Filter(), err)
		return
	}
	logger.Infof("filter changed to %q", pattern)
}

// watchFilter applies the content of file to target now and on every change of file, until done is closed.
// The directory is watched, so that the file may be created or replaced later.
func watchFilter(file string, target filterTarget) (chan bool, error) {
	dir := filepath.Dir(file)
	if !isDir(dir) {
		return nil, fmt.Errorf("filter file directory %s does not exist", dir)
	}
	o := &filterWatch{file: file, target: target}
	if isFile(file) {
		o.update()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	done := make(chan bool)
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if sameFile(event.Name, file) && (event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create ||
					event.Op&fsnotify.Chmod == fsnotify.Chmod) {
					o.update()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debugf("fail to watch filter directory: %v", err)
			case <-done:
				return
			}
		}
	}()

	logger.Debugf("watch filter directory: %s", dir)
	if err := watcher.Add(dir); err != nil {
		close(done)
		return nil, err
	}
	return done, nil
}
