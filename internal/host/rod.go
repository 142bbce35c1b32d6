package host

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mv/tabctl/internal/domain"
)

// Rod is the Chrome DevTools Protocol surface, driven through go-rod.
//
// CDP leaves a few gaps relative to the full surface: tab-strip reorder,
// pinning, selection, and window focus are extension-API concepts the
// protocol does not expose. Those operations return ErrUnsupported and
// the snapshots report best-effort values; callers degrade to logged
// partial results.
type Rod struct {
	browser *rod.Browser
	active  domain.TabID // last tab we activated
}

// Connect attaches to a running browser via controlURL, or launches one
// when controlURL is empty.
func Connect(controlURL string) (*Rod, error) {
	if controlURL == "" {
		path, _ := launcher.LookPath()
		u, err := launcher.New().Bin(path).Headless(false).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	return &Rod{browser: browser}, nil
}

// Close shuts down the control connection; a browser we launched
// ourselves exits with it.
func (r *Rod) Close() error {
	return r.browser.Close()
}

func (r *Rod) pages(ctx context.Context) (rod.Pages, error) {
	return r.browser.Context(ctx).Pages()
}

func windowOf(page *rod.Page) (WindowID, *proto.BrowserBounds, error) {
	res, err := proto.BrowserGetWindowForTarget{}.Call(page)
	if err != nil {
		return "", nil, err
	}
	return WindowID(strconv.Itoa(int(res.WindowID))), res.Bounds, nil
}

func (r *Rod) tabSnapshot(page *rod.Page, index int) (domain.TabSnapshot, error) {
	info, err := page.Info()
	if err != nil {
		return domain.TabSnapshot{}, err
	}
	id := domain.TabID(info.TargetID)
	return domain.TabSnapshot{
		ID:          id,
		URL:         info.URL,
		Title:       info.Title,
		Active:      id == r.active,
		WindowIndex: index,
	}, nil
}

// window groups pages by their browser window, preserving the target
// listing order within each window.
type window struct {
	id     WindowID
	bounds *proto.BrowserBounds
	pages  []*rod.Page
}

func (r *Rod) windows(ctx context.Context) ([]window, error) {
	pages, err := r.pages(ctx)
	if err != nil {
		return nil, err
	}
	var out []window
	index := map[WindowID]int{}
	for _, p := range pages {
		id, bounds, err := windowOf(p)
		if err != nil {
			return nil, err
		}
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, window{id: id, bounds: bounds})
		}
		out[i].pages = append(out[i].pages, p)
	}
	return out, nil
}

func (r *Rod) ListTabs(ctx context.Context) ([]domain.TabSnapshot, error) {
	wins, err := r.windows(ctx)
	if err != nil {
		return nil, err
	}
	if len(wins) == 0 {
		return nil, nil
	}
	var tabs []domain.TabSnapshot
	for i, p := range wins[0].pages {
		t, err := r.tabSnapshot(p, i)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, nil
}

func (r *Rod) ListWindows(ctx context.Context) ([]domain.WindowSnapshot, error) {
	wins, err := r.windows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.WindowSnapshot, 0, len(wins))
	for wi, w := range wins {
		snap := domain.WindowSnapshot{
			// CDP does not report window focus; treat the first
			// listed window as the focused one.
			Focused: wi == 0,
			State:   string(domain.WindowNormal),
		}
		if w.bounds != nil && w.bounds.WindowState != "" {
			snap.State = string(w.bounds.WindowState)
		}
		for ti, p := range w.pages {
			t, err := r.tabSnapshot(p, ti)
			if err != nil {
				return nil, err
			}
			snap.Tabs = append(snap.Tabs, t)
		}
		out = append(out, snap)
	}
	return out, nil
}

func (r *Rod) WindowTabs(ctx context.Context, id WindowID) ([]domain.TabSnapshot, error) {
	wins, err := r.windows(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range wins {
		if w.id != id {
			continue
		}
		var tabs []domain.TabSnapshot
		for i, p := range w.pages {
			t, err := r.tabSnapshot(p, i)
			if err != nil {
				return nil, err
			}
			tabs = append(tabs, t)
		}
		return tabs, nil
	}
	return nil, fmt.Errorf("window %s not found", id)
}

func (r *Rod) ActiveTab(ctx context.Context) (domain.TabSnapshot, error) {
	tabs, err := r.ListTabs(ctx)
	if err != nil {
		return domain.TabSnapshot{}, err
	}
	for _, t := range tabs {
		if t.Active {
			return t, nil
		}
	}
	if len(tabs) == 0 {
		return domain.TabSnapshot{}, fmt.Errorf("no open tabs")
	}
	return tabs[0], nil
}

// HighlightedTabs is not expressible over CDP; tab selection lives in
// the browser UI only.
func (r *Rod) HighlightedTabs(ctx context.Context) ([]domain.TabSnapshot, error) {
	return nil, ErrUnsupported
}

// MoveTab is not expressible over CDP; the tab strip is not scriptable
// without the extension API.
func (r *Rod) MoveTab(ctx context.Context, id domain.TabID, index int) error {
	return ErrUnsupported
}

func (r *Rod) page(ctx context.Context, id domain.TabID) (*rod.Page, error) {
	pages, err := r.pages(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		if string(p.TargetID) == string(id) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("tab %s not found", id)
}

func (r *Rod) RemoveTabs(ctx context.Context, ids []domain.TabID) error {
	for _, id := range ids {
		p, err := r.page(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rod) UpdateTab(ctx context.Context, id domain.TabID, upd TabUpdate) error {
	if upd.Pinned != nil {
		return ErrUnsupported
	}
	if !upd.Active {
		return nil
	}
	p, err := r.page(ctx, id)
	if err != nil {
		return err
	}
	if _, err := p.Activate(); err != nil {
		return err
	}
	r.active = id
	return nil
}

func (r *Rod) CreateWindow(ctx context.Context, urls []string, focused bool) (WindowID, error) {
	if len(urls) == 0 {
		urls = []string{""}
	}
	b := r.browser.Context(ctx)

	// The first target opens the window; the remaining ones land in it
	// because a freshly created window takes focus.
	first, err := b.Page(proto.TargetCreateTarget{URL: urls[0], NewWindow: true})
	if err != nil {
		return "", err
	}
	for _, u := range urls[1:] {
		if _, err := b.Page(proto.TargetCreateTarget{URL: u}); err != nil {
			return "", err
		}
	}

	id, _, err := windowOf(first)
	if err != nil {
		return "", err
	}
	if focused {
		if _, err := first.Activate(); err != nil {
			return "", err
		}
		r.active = domain.TabID(first.TargetID)
	}
	return id, nil
}

func (r *Rod) UpdateWindow(ctx context.Context, id WindowID, state domain.WindowState) error {
	wins, err := r.windows(ctx)
	if err != nil {
		return err
	}
	for _, w := range wins {
		if w.id != id || len(w.pages) == 0 {
			continue
		}
		return w.pages[0].SetWindow(&proto.BrowserBounds{
			WindowState: proto.BrowserWindowState(state),
		})
	}
	return fmt.Errorf("window %s not found", id)
}

var _ Surface = (*Rod)(nil)
