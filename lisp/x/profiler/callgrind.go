// Copyright © 2018 The ELPS authors

package profiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/luthersystems/ares/lisp"
)

// errWriter wraps an io.Writer and captures the first write error,
// short-circuiting subsequent writes after a failure.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprint(ew.w, s)
}

// A profiler implementation that builds Callgrind files, which can be opened
// in KCacheGrind or QCacheGrind.  Lisp values carry no source locations so
// every entry is reported against the file named by the context id.
type callgrindProfiler struct {
	profiler
	sync.Mutex
	writer    io.WriteCloser
	writeErr  error
	startTime time.Time
	refs      map[string]int
	refCount  int
	current   *callRef
}

var _ lisp.Profiler = &callgrindProfiler{}

// NewCallgrindProfiler returns a callgrind profiler for runtime.  Output
// must be configured with SetFile or SetWriter before Enable.
func NewCallgrindProfiler(runtime *lisp.Runtime, opts ...Option) *callgrindProfiler {
	p := new(callgrindProfiler)
	p.runtime = runtime
	p.applyConfigs(opts...)
	return p
}

// Represents something that got called
type callRef struct {
	start       time.Time
	prev        *callRef
	name        string
	children    []*callRef
	duration    time.Duration
	startMemory uint64
}

func (p *callgrindProfiler) Enable() error {
	p.Lock()
	if p.writer == nil {
		p.Unlock()
		return errors.New("no output set in profiler")
	}
	w := &errWriter{w: p.writer}
	w.printf("version: 1\ncreator: ares (Go %s)\n", runtime.Version())
	w.printf("cmd: Eval\npart: 1\npositions: line\n\n")
	w.printf("events: Time_(ns) Memory_(bytes)\n\n")
	if w.err != nil {
		p.Unlock()
		return w.err
	}
	p.startTime = time.Now()
	p.refs = make(map[string]int)
	p.refCount = 0
	p.current = nil
	p.pushCallRef("ENTRYPOINT")
	p.Unlock()
	p.runtime.Profiler = p
	return p.profiler.Enable()
}

// SetFile creates filename and writes the profile to it.
func (p *callgrindProfiler) SetFile(filename string) error {
	if p.IsEnabled() {
		return errors.New("profiler already enabled")
	}
	f, err := os.Create(filename) //#nosec G304
	if err != nil {
		return err
	}
	return p.SetWriter(f)
}

// SetWriter writes the profile to w, which is closed by Complete.
func (p *callgrindProfiler) SetWriter(w io.WriteCloser) error {
	p.Lock()
	defer p.Unlock()
	if p.enabled {
		return errors.New("profiler already enabled")
	}
	p.writer = w
	return nil
}

// Complete writes the entry point and summary and closes the output.
func (p *callgrindProfiler) Complete() error {
	p.Lock()
	defer p.Unlock()
	if p.writeErr != nil {
		return p.writeErr
	}
	ref := p.popCallRef()
	if ref == nil {
		return errors.New("profiler was not enabled")
	}
	ref.duration = time.Since(ref.start)
	w := &errWriter{w: p.writer}
	w.printf("fl=%s\n", p.getRef(p.fileName()))
	w.printf("fn=%s\n", p.getRef(ref.name))
	w.printf("%d %d %d\n", 0, ref.duration, 0)
	p.writeChildren(w, ref, 0)
	w.print("\n")
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	w.printf("summary %d %d\n\n", time.Since(p.startTime).Nanoseconds(), ms.TotalAlloc)
	if w.err != nil {
		return w.err
	}
	return p.writer.Close()
}

func (p *callgrindProfiler) fileName() string {
	return p.runtime.ID.String()
}

func (p *callgrindProfiler) getRef(name string) string {
	if ref, ok := p.refs[name]; ok {
		return fmt.Sprintf("(%d)", ref)
	}
	p.refCount++
	p.refs[name] = p.refCount
	return fmt.Sprintf("(%d) %s", p.refCount, name)
}

func (p *callgrindProfiler) Start(name string) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	p.Lock()
	p.pushCallRef(p.prettyFunName(name))
	p.Unlock()
	return p.end
}

// pushCallRef records entry into name as a child of the current call.
func (p *callgrindProfiler) pushCallRef(name string) {
	ref := &callRef{name: name, prev: p.current}
	if p.current != nil {
		p.current.children = append(p.current.children, ref)
	}
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	ref.startMemory = ms.TotalAlloc
	ref.start = time.Now()
	p.current = ref
}

func (p *callgrindProfiler) popCallRef() *callRef {
	ref := p.current
	if ref != nil {
		p.current = ref.prev
	}
	return ref
}

func (p *callgrindProfiler) end() {
	p.Lock()
	defer p.Unlock()
	ref := p.popCallRef()
	if ref == nil || p.writeErr != nil {
		return
	}
	ref.duration = time.Since(ref.start)
	if ref.duration == 0 {
		ref.duration = 1
	}
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	memory := ms.TotalAlloc - ref.startMemory
	w := &errWriter{w: p.writer}
	w.printf("fl=%s\n", p.getRef(p.fileName()))
	w.printf("fn=%s\n", p.getRef(ref.name))
	w.printf("%d %d %d\n", 0, ref.duration, memory)
	p.writeChildren(w, ref, memory)
	w.print("\n")
	if w.err != nil {
		p.writeErr = w.err
	}
}

func (p *callgrindProfiler) writeChildren(w *errWriter, ref *callRef, memory uint64) {
	for _, entry := range ref.children {
		w.printf("cfl=%s\n", p.getRef(p.fileName()))
		w.printf("cfn=%s\n", p.getRef(entry.name))
		w.print("calls=1 0 0\n")
		w.printf("%d %d %d\n", 0, entry.duration, memory)
	}
}
