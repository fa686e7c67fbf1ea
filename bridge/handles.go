// Package bridge exposes reply channels through a flat, ABI-shaped
// surface: opaque integer handles, byte-slice payloads, and error strings
// instead of error values. A foreign-function wrapper can map every
// function here to a C-callable symbol one to one.
//
// Channel objects are reference counted. Acquire hands out an additional
// handle to the same underlying channel; Release drops one reference and
// closes the channel's sink when the last reference goes.
package bridge

import (
	"sync"
	"sync/atomic"

	"github.com/pellucid-io/scopes/reply"
)

// Handle identifies a channel object across the boundary.
// InvalidHandle is never issued.
type Handle uint64

// InvalidHandle is the zero handle, returned on failed lookups.
const InvalidHandle Handle = 0

// object is one reference-counted channel. Both reply pointers share the
// refcount; exactly one of them is non-nil.
type object struct {
	refs    atomic.Int64
	search  *reply.SearchReply
	preview *reply.PreviewReply
	sink    reply.Sink
}

// registry maps handles to channel objects. Multiple handles may point at
// the same object; the object's refcount equals the number of live handles.
type registry struct {
	mu      sync.Mutex
	next    uint64
	handles map[Handle]*object
}

var reg = &registry{handles: make(map[Handle]*object)}

func (r *registry) insert(obj *object) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := Handle(r.next)
	r.handles[h] = obj
	return h
}

func (r *registry) lookup(h Handle) *object {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles[h]
}

func (r *registry) remove(h Handle) *object {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj := r.handles[h]
	if obj != nil {
		delete(r.handles, h)
	}
	return obj
}

// OpenSearch creates a search reply channel and returns its first handle.
func OpenSearch(sink reply.Sink, cfg reply.Config) Handle {
	obj := &object{search: reply.NewSearchReply(sink, cfg), sink: sink}
	obj.refs.Store(1)
	return reg.insert(obj)
}

// OpenPreview creates a preview reply channel and returns its first handle.
func OpenPreview(sink reply.Sink, cfg reply.Config) Handle {
	obj := &object{preview: reply.NewPreviewReply(sink, cfg), sink: sink}
	obj.refs.Store(1)
	return reg.insert(obj)
}

// Acquire returns a new handle sharing h's channel, bumping the refcount.
// Returns InvalidHandle if h is unknown.
func Acquire(h Handle) Handle {
	obj := reg.lookup(h)
	if obj == nil {
		return InvalidHandle
	}
	obj.refs.Add(1)
	return reg.insert(obj)
}

// Release invalidates h and drops one reference. The last release closes
// the channel's sink; the close error, if any, is reported as the error
// string. Releasing an unknown handle is an error.
func Release(h Handle) string {
	obj := reg.remove(h)
	if obj == nil {
		return "unknown handle"
	}
	if obj.refs.Add(-1) > 0 {
		return ""
	}
	if err := obj.sink.Close(); err != nil {
		return err.Error()
	}
	return ""
}
