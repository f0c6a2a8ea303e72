// Package browser provides web-browsing tools backed by a headless
// Chrome instance. Pages are addressed by opaque session IDs so the
// model can keep several pages open at once.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"

	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit"
)

// Manager owns the Chrome lifecycle and the open pages. The browser is
// launched lazily on the first goto_url call.
type Manager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	pages    map[string]*rod.Page // session ID → page
	headless bool
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithHeadless sets headless mode (default true).
func WithHeadless(h bool) Option {
	return func(m *Manager) { m.headless = h }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// New creates a Manager with options.
func New(opts ...Option) *Manager {
	m := &Manager{
		pages:    make(map[string]*rod.Page),
		headless: true,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Close shuts down the browser and forgets all pages.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		return nil
	}
	err := m.browser.Close()
	m.browser = nil
	m.pages = make(map[string]*rod.Page)
	return err
}

// Registrations returns the toolkit's tools for bulk registration.
func (m *Manager) Registrations() []tool.Registration {
	return []tool.Registration{
		tool.FuncR("goto_url",
			"Open a URL in a browser page. Omit session_id to open a new page; pass an existing session_id to navigate that page.",
			"json object", m.gotoURL),
		tool.FuncR("get_page_content",
			"Get the full HTML content of a browser page.",
			"json object", m.getPageContent),
		tool.FuncR("click_element",
			"Click the first element matching a CSS selector on a browser page.",
			"json object", m.clickElement),
		tool.FuncR("fill_input",
			"Type text into the first element matching a CSS selector on a browser page.",
			"json object", m.fillInput),
		tool.FuncR("screenshot",
			"Take a full-page PNG screenshot of a browser page and save it to a file.",
			"json object", m.screenshot),
		tool.FuncR("end_browsing_page",
			"Close a browser page and release its session.",
			"json object", m.endBrowsingPage),
	}
}

// ensureBrowser launches Chrome if it is not running. Caller must hold mu.
func (m *Manager) ensureBrowser() error {
	if m.browser != nil {
		return nil
	}

	l := launcher.New().
		Headless(m.headless).
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check")

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch Chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("connect to Chrome: %w", err)
	}

	m.logger.Debug("Chrome launched", "cdp", controlURL, "headless", m.headless)
	m.browser = b
	return nil
}

func (m *Manager) getPage(sessionID string) (*rod.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	page, ok := m.pages[sessionID]
	if !ok {
		return nil, fmt.Errorf("no open page for session %q", sessionID)
	}
	return page, nil
}

type gotoArgs struct {
	URL       string `json:"url" desc:"The URL to open" required:"true"`
	SessionID string `json:"session_id" desc:"Existing page session to navigate; empty opens a new page"`
}

type sessionArgs struct {
	SessionID string `json:"session_id" desc:"The page session ID" required:"true"`
}

type selectorArgs struct {
	SessionID string `json:"session_id" desc:"The page session ID" required:"true"`
	Selector  string `json:"selector" desc:"CSS selector of the target element" required:"true"`
}

type fillArgs struct {
	SessionID string `json:"session_id" desc:"The page session ID" required:"true"`
	Selector  string `json:"selector" desc:"CSS selector of the input element" required:"true"`
	Text      string `json:"text" desc:"The text to type" required:"true"`
}

type screenshotArgs struct {
	SessionID string `json:"session_id" desc:"The page session ID" required:"true"`
	Path      string `json:"path" desc:"File path to save the PNG to" required:"true"`
}

type pageInfo struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
}

func (m *Manager) gotoURL(ctx context.Context, args gotoArgs) (string, error) {
	m.mu.Lock()
	if err := m.ensureBrowser(); err != nil {
		m.mu.Unlock()
		return toolkit.Failure(err)
	}

	sessionID := args.SessionID
	page, ok := m.pages[sessionID]
	if sessionID == "" {
		sessionID = "page-" + uuid.NewString()
		page, ok = nil, false
	} else if !ok {
		m.mu.Unlock()
		return toolkit.Failure(fmt.Errorf("no open page for session %q", sessionID))
	}

	if !ok {
		p, err := m.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			m.mu.Unlock()
			return toolkit.Failure(fmt.Errorf("open page: %w", err))
		}
		m.pages[sessionID] = p
		page = p
	}
	m.mu.Unlock()

	if err := page.Navigate(args.URL); err != nil {
		return toolkit.Failure(fmt.Errorf("navigate: %w", err))
	}
	if err := page.WaitLoad(); err != nil {
		return toolkit.Failure(fmt.Errorf("wait load: %w", err))
	}

	info := pageInfo{SessionID: sessionID, URL: args.URL}
	if pi, err := page.Info(); err == nil {
		info.URL = pi.URL
		info.Title = pi.Title
	}

	m.logger.Debug("page navigated", "session", sessionID, "url", info.URL)
	return toolkit.Success(info)
}

func (m *Manager) getPageContent(ctx context.Context, args sessionArgs) (string, error) {
	page, err := m.getPage(args.SessionID)
	if err != nil {
		return toolkit.Failure(err)
	}

	html, err := page.HTML()
	if err != nil {
		return toolkit.Failure(fmt.Errorf("read page content: %w", err))
	}
	return toolkit.Success(html)
}

func (m *Manager) clickElement(ctx context.Context, args selectorArgs) (string, error) {
	page, err := m.getPage(args.SessionID)
	if err != nil {
		return toolkit.Failure(err)
	}

	el, err := page.Element(args.Selector)
	if err != nil {
		return toolkit.Failure(fmt.Errorf("find element %q: %w", args.Selector, err))
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return toolkit.Failure(fmt.Errorf("click %q: %w", args.Selector, err))
	}

	_ = page.WaitStable(300 * time.Millisecond)

	m.logger.Debug("element clicked", "session", args.SessionID, "selector", args.Selector)
	return toolkit.Success("clicked " + args.Selector)
}

func (m *Manager) fillInput(ctx context.Context, args fillArgs) (string, error) {
	page, err := m.getPage(args.SessionID)
	if err != nil {
		return toolkit.Failure(err)
	}

	el, err := page.Element(args.Selector)
	if err != nil {
		return toolkit.Failure(fmt.Errorf("find element %q: %w", args.Selector, err))
	}
	if err := el.Input(args.Text); err != nil {
		return toolkit.Failure(fmt.Errorf("type into %q: %w", args.Selector, err))
	}

	m.logger.Debug("input filled", "session", args.SessionID, "selector", args.Selector)
	return toolkit.Success("filled " + args.Selector)
}

func (m *Manager) screenshot(ctx context.Context, args screenshotArgs) (string, error) {
	page, err := m.getPage(args.SessionID)
	if err != nil {
		return toolkit.Failure(err)
	}

	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return toolkit.Failure(fmt.Errorf("screenshot: %w", err))
	}
	if err := os.WriteFile(args.Path, data, 0o644); err != nil {
		return toolkit.Failure(fmt.Errorf("save screenshot: %w", err))
	}

	m.logger.Debug("screenshot saved", "session", args.SessionID, "path", args.Path)
	return toolkit.Success("screenshot saved to " + args.Path)
}

func (m *Manager) endBrowsingPage(ctx context.Context, args sessionArgs) (string, error) {
	m.mu.Lock()
	page, ok := m.pages[args.SessionID]
	if ok {
		delete(m.pages, args.SessionID)
	}
	m.mu.Unlock()

	if !ok {
		return toolkit.Failure(fmt.Errorf("no open page for session %q", args.SessionID))
	}
	if err := page.Close(); err != nil {
		return toolkit.Failure(fmt.Errorf("close page: %w", err))
	}

	m.logger.Debug("page closed", "session", args.SessionID)
	return toolkit.Success("closed " + args.SessionID)
}
