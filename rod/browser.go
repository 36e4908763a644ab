package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced with a fresh process.
const DefaultMaxPages = 75

// browser owns a headless Chrome process and replaces it after maxPages
// renders, since Chrome's resident memory only grows over a long run.
// A replaced process keeps running until its last in-flight page is
// released.
type browser struct {
	mu       sync.Mutex
	current  *generation
	rendered int
	maxPages int
	closed   bool
}

// generation is one launched Chrome process.
type generation struct {
	rod      *rod.Browser
	launcher *launcher.Launcher
	inFlight int
	retired  bool
}

func newBrowser(maxPages int) (*browser, error) {
	g, err := launch()
	if err != nil {
		return nil, err
	}
	return &browser{current: g, maxPages: maxPages}, nil
}

// acquire returns the browser generation to render the next page on,
// relaunching first if the render budget is spent. A failed relaunch keeps
// the old process. Every acquire must be paired with a release.
func (b *browser) acquire() (*generation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errClosed
	}
	if b.maxPages > 0 && b.rendered >= b.maxPages {
		if g, err := launch(); err == nil {
			old := b.current
			old.retired = true
			if old.inFlight == 0 {
				_ = old.shutdown()
			}
			b.current = g
			b.rendered = 0
		}
	}
	b.rendered++
	b.current.inFlight++
	return b.current, nil
}

// release marks a page rendered on g as finished.
func (b *browser) release(g *generation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	g.inFlight--
	if g.retired && g.inFlight == 0 {
		_ = g.shutdown()
	}
}

func launch() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &generation{rod: rb, launcher: l}, nil
}

func (g *generation) shutdown() error {
	err := g.rod.Close()
	g.launcher.Kill()
	return err
}

// pid returns the process ID of the current browser launcher.
func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0
	}
	return b.current.launcher.PID()
}

// close shuts down the current process, aborting any page still rendering
// on it.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.current.retired = true
	return b.current.shutdown()
}
