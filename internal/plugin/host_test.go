package plugin

import (
	"errors"
	"testing"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/navigation"
)

// recordingPlugin implements every hook and records the calls it receives.
type recordingPlugin struct {
	BasePlugin
	name    string
	calls   *[]string
	failOn  Hook
	failErr error
	pages   int
}

func (p *recordingPlugin) Metadata() PluginMetadata {
	return PluginMetadata{Name: p.name, Version: "v1.0.0"}
}

func (p *recordingPlugin) record(h Hook) error {
	if p.calls != nil {
		*p.calls = append(*p.calls, p.name+":"+h.String())
	}
	if p.failOn == h {
		return p.failErr
	}
	return nil
}

func (p *recordingPlugin) ConfigLoaded(*config.Config) error {
	return p.record(HookConfigLoaded)
}

func (p *recordingPlugin) BeforeReadFileMeta(headers map[string]string) {
	_ = p.record(HookBeforeReadFileMeta)
	headers[p.name] = "X-" + p.name
}

func (p *recordingPlugin) PageData(data map[string]any, meta map[string]any) {
	_ = p.record(HookPageData)
	data[p.name] = meta[p.name]
}

func (p *recordingPlugin) GetPages(pages []navigation.Page, _ *navigation.Page) error {
	p.pages = len(pages)
	return p.record(HookGetPages)
}

func (p *recordingPlugin) BeforeRender(vars map[string]any) error {
	vars[p.name] = true
	return p.record(HookBeforeRender)
}

func newTestHost(t *testing.T, plugins ...Plugin) *Host {
	t.Helper()
	registry := NewRegistry()
	for _, p := range plugins {
		if err := registry.Register(p); err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
	}
	return NewHost(registry, nil)
}

// TestHostDispatchOrder tests that hooks run in registration order.
func TestHostDispatchOrder(t *testing.T) {
	var calls []string
	first := &recordingPlugin{name: "first", calls: &calls}
	second := &recordingPlugin{name: "second", calls: &calls}
	host := newTestHost(t, first, newMetadataOnly("bare"), second)

	if err := host.ConfigLoaded(config.Default()); err != nil {
		t.Fatalf("ConfigLoaded() failed: %v", err)
	}
	if err := host.GetPages([]navigation.Page{{URL: "/a"}, {URL: "/b"}}, nil); err != nil {
		t.Fatalf("GetPages() failed: %v", err)
	}

	want := []string{"first:config_loaded", "second:config_loaded", "first:get_pages", "second:get_pages"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, calls[i], want[i])
		}
	}
	if first.pages != 2 || second.pages != 2 {
		t.Errorf("plugins saw %d and %d pages, want 2", first.pages, second.pages)
	}
}

// TestHostHeaders tests that plugins extend the default header map.
func TestHostHeaders(t *testing.T) {
	host := newTestHost(t, &recordingPlugin{name: "extra"})

	headers := host.Headers()
	if headers["title"] != "Title" {
		t.Errorf("headers[title] = %q, want Title", headers["title"])
	}
	if headers["extra"] != "X-extra" {
		t.Errorf("headers[extra] = %q, want X-extra", headers["extra"])
	}
	if _, ok := DefaultHeaders["extra"]; ok {
		t.Error("Headers() must not modify DefaultHeaders")
	}
}

// TestHostPageDataAndRender tests the data and template variable hooks.
func TestHostPageDataAndRender(t *testing.T) {
	host := newTestHost(t, &recordingPlugin{name: "extra"})

	data := map[string]any{}
	host.PageData(data, map[string]any{"extra": "value"})
	if data["extra"] != "value" {
		t.Errorf("data[extra] = %v, want value", data["extra"])
	}

	vars := map[string]any{}
	if err := host.BeforeRender(vars); err != nil {
		t.Fatalf("BeforeRender() failed: %v", err)
	}
	if vars["extra"] != true {
		t.Error("BeforeRender() should set the plugin's variable")
	}
}

// TestHostWrapsFailures tests that hook failures become plugin errors and stop dispatch.
func TestHostWrapsFailures(t *testing.T) {
	var calls []string
	cause := errors.New("broken")
	failing := &recordingPlugin{name: "failing", calls: &calls, failOn: HookGetPages, failErr: cause}
	after := &recordingPlugin{name: "after", calls: &calls}
	host := newTestHost(t, failing, after)

	err := host.GetPages(nil, nil)
	if err == nil {
		t.Fatal("GetPages() should fail")
	}

	var pluginErr *PluginError
	if !errors.As(err, &pluginErr) {
		t.Fatalf("error %v should contain a PluginError", err)
	}
	if pluginErr.PluginName != "failing" || pluginErr.Operation != "get_pages" {
		t.Errorf("PluginError = %+v", pluginErr)
	}
	if !errors.Is(err, cause) {
		t.Error("error should unwrap to the plugin's cause")
	}
	if !ferrors.HasCategory(err, ferrors.CategoryPlugin) {
		t.Errorf("category = %s, want plugin", ferrors.GetCategory(err))
	}
	for _, c := range calls {
		if c == "after:get_pages" {
			t.Error("dispatch should stop at the first failure")
		}
	}
}

// TestHostKeepsClassifiedCategory tests that a classified cause keeps its category.
func TestHostKeepsClassifiedCategory(t *testing.T) {
	cause := ferrors.ValidationError("duplicate navigation entry").Build()
	host := newTestHost(t, &recordingPlugin{name: "nav", failOn: HookBeforeRender, failErr: cause})

	err := host.BeforeRender(map[string]any{})
	if !ferrors.HasCategory(err, ferrors.CategoryValidation) {
		t.Errorf("category = %s, want validation", ferrors.GetCategory(err))
	}
}

// lifecyclePlugin counts lifecycle calls.
type lifecyclePlugin struct {
	name       string
	inits      int
	cleanups   int
	cleanupErr error
}

func (p *lifecyclePlugin) Metadata() PluginMetadata {
	return PluginMetadata{Name: p.name, Version: "v1.0.0"}
}

func (p *lifecyclePlugin) Init() error {
	p.inits++
	return nil
}

func (p *lifecyclePlugin) Cleanup() error {
	p.cleanups++
	return p.cleanupErr
}

// TestHostLifecycle tests Start and Close.
func TestHostLifecycle(t *testing.T) {
	ok := &lifecyclePlugin{name: "ok"}
	bad := &lifecyclePlugin{name: "bad", cleanupErr: errors.New("leak")}
	host := newTestHost(t, ok, bad)

	if err := host.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	err := host.Close()
	if err == nil {
		t.Fatal("Close() should report the cleanup failure")
	}
	if ok.inits != 1 || ok.cleanups != 1 || bad.cleanups != 1 {
		t.Errorf("lifecycle counts: ok=%d/%d bad=%d", ok.inits, ok.cleanups, bad.cleanups)
	}
}
