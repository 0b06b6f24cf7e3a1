package edgehttp

import "sync"

// resourcePool holds Resources between connections so that accepting a new
// connection doesn't pay for a fresh pair of buffer allocations. A
// keep-alive reset does not go through the pool: the engine calls
// Resource.Reset on the Resource it already holds.
var resourcePool = sync.Pool{
	New: func() interface{} {
		return NewResource(DefaultBufferCapacity)
	},
}

// GetResource retrieves a Resource from the pool, reset and ready for a new
// connection's first request.
//
// IMPORTANT: you must call PutResource when the connection closes for good.
//
// Allocation behavior: 0 allocs/op once the pool is warm.
func GetResource() *Resource {
	res := resourcePool.Get().(*Resource)
	res.Reset()
	connectionsActive.Inc()
	return res
}

// PutResource returns a Resource to the pool. The Resource's buffer
// capacities are retained (not released) so that a connection which grew
// its buffers handling a large request doesn't force the next connection
// to regrow from scratch.
//
// After calling PutResource, the caller must not use the Resource again.
func PutResource(res *Resource) {
	if res == nil {
		return
	}
	res.Reset()
	resourcePool.Put(res)
	connectionsActive.Dec()
}
