package textfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/plist"
	"github.com/npillmayer/plist/btree"
)

/*
BSD 3-Clause License

Copyright (c) 2020–26, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.
*/

// DefaultFragmentLines is the number of lines read between two snapshots.
const DefaultFragmentLines = 256

// Options configures loading of a text file. The zero value selects the
// defaults.
type Options struct {
	FragmentLines int            // lines per published snapshot
	Context       *btree.Context // block size context of the lists
}

func (opts Options) normalized() Options {
	if opts.FragmentLines <= 0 {
		opts.FragmentLines = DefaultFragmentLines
	}
	if opts.Context == nil {
		opts.Context = btree.DefaultContext()
	}
	return opts
}

// File is a text file being loaded as a list of lines.
type File struct {
	path      string
	opts      Options
	file      *os.File
	cast      *caster.Caster // broadcasts snapshots while loading
	done      chan struct{}
	mx        sync.Mutex
	current   plist.List[string]
	lastError error
}

// Load opens a file, which must be a text file, and starts reading it in the
// background. Lines do not include their line terminators.
//
// Loading stops early if ctx is cancelled; Wait then reports ctx's error.
func Load(ctx context.Context, name string, opts Options) (*File, error) {
	tf, err := openFile(name, opts.normalized())
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loading %s with %d lines per fragment", name, tf.opts.FragmentLines)
	go tf.loadAll(ctx)
	return tf, nil
}

// openFile opens an OS file, checking for error conditions.
func openFile(name string, opts Options) (*File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &File{
		path:    name,
		opts:    opts,
		file:    file,
		cast:    caster.New(nil),
		done:    make(chan struct{}),
		current: plist.Empty[string](opts.Context),
	}, nil
}

// Path returns the name the file has been opened with.
func (tf *File) Path() string {
	return tf.path
}

// Current returns the lines loaded so far.
func (tf *File) Current() plist.List[string] {
	tf.mx.Lock()
	defer tf.mx.Unlock()
	return tf.current
}

// Wait blocks until loading has finished and returns all lines, together
// with the first error encountered.
func (tf *File) Wait() (plist.List[string], error) {
	<-tf.done
	tf.mx.Lock()
	defer tf.mx.Unlock()
	return tf.current, tf.lastError
}

// Subscribe returns a channel receiving snapshots of the lines loaded so
// far. Slow receivers skip intermediate snapshots, but always receive the
// latest one. The channel is closed when loading has finished or ctx is
// done. Subscribe returns false if loading has already finished; use Wait
// in this case.
func (tf *File) Subscribe(ctx context.Context) (<-chan plist.List[string], bool) {
	sub, ok := tf.cast.Sub(ctx, 1)
	if !ok {
		return nil, false
	}
	out := make(chan plist.List[string])
	go func() {
		defer close(out)
		var pending plist.List[string]
		have := false
		for {
			var send chan<- plist.List[string]
			if have {
				send = out
			}
			select {
			case m, ok := <-sub:
				if !ok {
					if have {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}
					return
				}
				if l, isList := m.(plist.List[string]); isList {
					pending, have = l, true
				}
			case send <- pending:
				have = false
			case <-tf.done:
				select {
				case out <- tf.Current():
				case <-ctx.Done():
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, true
}

func (tf *File) publish(l plist.List[string], err error) {
	tf.mx.Lock()
	tf.current = l
	if err != nil && tf.lastError == nil {
		tf.lastError = err
	}
	tf.mx.Unlock()
	tf.cast.Pub(l)
}

// --- File loading goroutine ------------------------------------------------

func (tf *File) loadAll(ctx context.Context) {
	defer close(tf.done)
	defer tf.cast.Close()
	defer tf.file.Close()
	//
	b := plist.NewBuilder[string](tf.opts.Context)
	scanner := bufio.NewScanner(tf.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	fragments := 0
	for scanner.Scan() {
		b.Append(scanner.Text())
		if b.Len()%tf.opts.FragmentLines == 0 {
			fragments++
			tf.publish(b.Build(), nil)
			if err := ctx.Err(); err != nil {
				tracer().Infof("loading %s cancelled after %d lines", tf.path, b.Len())
				tf.publish(b.Build(), err)
				return
			}
		}
	}
	var err error
	if err = scanner.Err(); err != nil {
		err = fmt.Errorf("error loading text fragment of %s: %w", tf.path, err)
		tracer().Errorf(err.Error())
	}
	tf.publish(b.Build(), err)
	tracer().Debugf("loaded %d lines of %s in %d fragments", b.Len(), tf.path, fragments+1)
}
