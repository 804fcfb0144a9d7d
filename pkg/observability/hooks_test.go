package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSearchHooks{}
	s.OnSearchStart(ctx, "A", "E")
	s.OnNodeVisited(ctx, "A", 0)
	s.OnSearchComplete(ctx, "A", "E", 5, true, time.Millisecond, nil)

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, []string{"svg"})
	r.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/path")
	h.OnResponse(ctx, "GET", "/api/path", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customSearch := &testSearchHooks{}
	SetSearchHooks(customSearch)
	if Search() != customSearch {
		t.Error("SetSearchHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	SetSearchHooks(nil)

	if Search() != custom {
		t.Error("SetSearchHooks(nil) should be ignored")
	}

	Reset()
}

type testSearchHooks struct{ NoopSearchHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
