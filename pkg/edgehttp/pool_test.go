package edgehttp

import "testing"

func TestGetPutResourceRoundTrip(t *testing.T) {
	r := GetResource()
	if r == nil {
		t.Fatal("GetResource returned nil")
	}
	r.Input.Write([]byte("leftover"))
	PutResource(r)

	r2 := GetResource()
	if r2.Input.Readable() != 0 {
		t.Errorf("Input.Readable() = %d on reused Resource, want 0", r2.Input.Readable())
	}
	PutResource(r2)
}

func TestPutResourceNilIsNoOp(t *testing.T) {
	PutResource(nil) // must not panic
}
