package observability

import (
	"context"
	"testing"
	"time"
)

type testPipelineHooks struct {
	NoopPipelineHooks
	parseStarts  int
	layoutStarts int
	renderStarts int
}

func (h *testPipelineHooks) OnParseStart(context.Context)           { h.parseStarts++ }
func (h *testPipelineHooks) OnLayoutStart(context.Context, string)  { h.layoutStarts++ }
func (h *testPipelineHooks) OnRenderStart(context.Context, []string) { h.renderStarts++ }

type testCacheHooks struct {
	NoopCacheHooks
	hits   int
	misses int
	sets   int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// None of these should panic.
	Pipeline().OnParseStart(ctx)
	Pipeline().OnParseComplete(ctx, 3, time.Millisecond, nil)
	Pipeline().OnLayoutStart(ctx, "run")
	Pipeline().OnLayoutComplete(ctx, "run", time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "layout", 128)
}

func TestSetPipelineHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	hooks := &testPipelineHooks{}
	SetPipelineHooks(hooks)

	ctx := context.Background()
	Pipeline().OnParseStart(ctx)
	Pipeline().OnLayoutStart(ctx, "run")
	Pipeline().OnRenderStart(ctx, []string{"svg"})

	if hooks.parseStarts != 1 {
		t.Errorf("parseStarts = %d, want 1", hooks.parseStarts)
	}
	if hooks.layoutStarts != 1 {
		t.Errorf("layoutStarts = %d, want 1", hooks.layoutStarts)
	}
	if hooks.renderStarts != 1 {
		t.Errorf("renderStarts = %d, want 1", hooks.renderStarts)
	}
}

func TestSetCacheHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	hooks := &testCacheHooks{}
	SetCacheHooks(hooks)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 64)

	if hooks.hits != 1 || hooks.misses != 2 || hooks.sets != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetPipelineHooks(nil)
	SetCacheHooks(nil)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("nil pipeline hooks should leave the noop default in place")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("nil cache hooks should leave the noop default in place")
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&testPipelineHooks{})
	SetCacheHooks(&testCacheHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore noop pipeline hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore noop cache hooks")
	}
}
