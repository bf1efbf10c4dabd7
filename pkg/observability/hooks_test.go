package observability

import (
	"testing"
	"time"
)

type testSceneHooks struct {
	resolves int
	dropped  int
}

func (h *testSceneHooks) OnResolveStart(string, int)                   { h.resolves++ }
func (h *testSceneHooks) OnResolveComplete(string, int, time.Duration) {}
func (h *testSceneHooks) OnItemDropped(string, uint32)                 { h.dropped++ }

type testRegistryHooks struct {
	hits    int
	creates int
}

func (h *testRegistryHooks) OnSystemHit(uint32)           { h.hits++ }
func (h *testRegistryHooks) OnSystemCreate(uint32)        { h.creates++ }
func (h *testRegistryHooks) OnInstantiate(uint32, uint32) {}

func TestNoopHooksDoNotPanic(t *testing.T) {
	s := NoopSceneHooks{}
	s.OnResolveStart("layer-1", 10)
	s.OnResolveComplete("layer-1", 8, time.Millisecond)
	s.OnItemDropped("layer-1", 3)

	r := NoopRegistryHooks{}
	r.OnSystemHit(1)
	r.OnSystemCreate(1)
	r.OnInstantiate(1, 42)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	// Verify defaults are noop
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Scene() should return NoopSceneHooks by default")
	}
	if _, ok := Registry().(NoopRegistryHooks); !ok {
		t.Error("Registry() should return NoopRegistryHooks by default")
	}

	// Set custom hooks
	customScene := &testSceneHooks{}
	SetSceneHooks(customScene)
	if Scene() != SceneHooks(customScene) {
		t.Error("SetSceneHooks should set custom hooks")
	}

	customRegistry := &testRegistryHooks{}
	SetRegistryHooks(customRegistry)
	if Registry() != RegistryHooks(customRegistry) {
		t.Error("SetRegistryHooks should set custom hooks")
	}

	// Nil registration is ignored
	SetSceneHooks(nil)
	if Scene() != SceneHooks(customScene) {
		t.Error("SetSceneHooks(nil) should keep existing hooks")
	}

	// Reset restores noops
	Reset()
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Reset should restore NoopSceneHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	s := &testSceneHooks{}
	SetSceneHooks(s)

	Scene().OnResolveStart("layer-1", 3)
	Scene().OnItemDropped("layer-1", 7)
	Scene().OnItemDropped("layer-1", 8)

	if s.resolves != 1 {
		t.Errorf("resolves = %d, want 1", s.resolves)
	}
	if s.dropped != 2 {
		t.Errorf("dropped = %d, want 2", s.dropped)
	}
}
