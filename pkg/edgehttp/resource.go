package edgehttp

import "github.com/yourusername/edgehttp/pkg/edgehttp/http11"

// DefaultBufferCapacity is the initial size of each of a Resource's two
// buffers, matching the configuration default of 2048 bytes.
const DefaultBufferCapacity = 2048

// Resource is the owned, resettable state for one live connection: an
// input buffer, an output buffer, and a request view bound to a fixed
// headers slot array. The handler factory allocates one at accept time and
// recycles it on close; only the Engine assigned to this connection's fd
// ever mutates it, so Resource needs no locking.
type Resource struct {
	Input   *ByteBuffer
	Output  *ByteBuffer
	Request http11.Request
}

// NewResource allocates a Resource with buffers of the given initial
// capacity. Capacity grows per-connection as traffic demands (see
// Engine.tryRead) and is retained across Reset.
func NewResource(initialCap int) *Resource {
	return &Resource{
		Input:  NewByteBuffer(initialCap),
		Output: NewByteBuffer(initialCap),
	}
}

// Reset clears both buffers and zeroes the header slot array, preparing the
// Resource for the next request on a persistent connection. Buffer
// capacities are retained to amortize allocation.
func (r *Resource) Reset() {
	r.Input.Reset()
	r.Output.Reset()
	r.Request.Reset()
}

// Release returns both buffers' backing arrays to the shared pool. Called
// only when the connection is permanently discarded, never on a per-request
// Reset.
func (r *Resource) Release() {
	r.Input.Release()
	r.Output.Release()
}
