package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/goccy/go-json"

	"github.com/go-scripts/shortlist/pkg/common"
)

// Session is one headless browser tab holding the listing page
type Session struct {
	config        *common.Configuration
	logger        *log.Logger
	base          *url.URL
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewSession starts the browser. Call Close when done.
func NewSession(config *common.Configuration, logger *log.Logger) (*Session, error) {
	// Setup browser options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if config.Headless {
		opts = append(opts, chromedp.Headless)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debugf))

	// the first Run allocates the browser and must use the long-lived context
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Session{
		config:        config,
		logger:        logger,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close cleans up browser resources
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}

// run executes actions in the tab and aborts them when ctx is done
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Open navigates to the listing page and waits for the body
func (s *Session) Open(ctx context.Context, startURL string) error {
	var location string
	s.logger.Info("opening listing", "url", startURL)
	if err := s.run(ctx,
		chromedp.Navigate(startURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
	); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", startURL, err)
	}

	base, err := url.Parse(location)
	if err != nil {
		return fmt.Errorf("invalid page location %q: %w", location, err)
	}
	s.base = base
	return nil
}

// BaseURL returns the URL the listing was loaded from, nil before Open
func (s *Session) BaseURL() *url.URL {
	return s.base
}

// HTML returns the current DOM serialized
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read listing HTML: %w", err)
	}
	return html, nil
}

// AnchorCount returns the number of rendered detail anchors
func (s *Session) AnchorCount(ctx context.Context) (int, error) {
	var n int
	if err := s.run(ctx, chromedp.Evaluate(countJS(s.config.DetailPattern), &n)); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Session) ScrollToBottom(ctx context.Context) error {
	return s.run(ctx, chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil))
}

// ActivateExpandControl clicks the first visible button-like element whose text contains a vocabulary word
func (s *Session) ActivateExpandControl(ctx context.Context, vocabulary []string) (bool, error) {
	var clicked bool
	if err := s.run(ctx, chromedp.Evaluate(activateJS(vocabulary, s.config.DetailPattern), &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

// WaitForGrowth waits in the page for the anchor count to pass baseline. A MutationObserver
// resolves on the first qualifying change; the timer resolves with the unchanged count.
func (s *Session) WaitForGrowth(ctx context.Context, baseline int, timeout time.Duration) (int, bool, error) {
	var n int
	if err := s.run(ctx, chromedp.Evaluate(waitJS(s.config.DetailPattern, baseline, timeout), &n, awaitPromise)); err != nil {
		return 0, false, err
	}
	return n, n > baseline, nil
}

// Retrieve fetches a detail document from inside the tab so the site's cookies apply
func (s *Session) Retrieve(ctx context.Context, link string) ([]byte, error) {
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	var body string
	if err := s.run(ctx, chromedp.Evaluate(fetchJS(link), &body, awaitPromise)); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", link, err)
	}
	return []byte(body), nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func anchorSelector(pattern string) string {
	return fmt.Sprintf(`a[href*=%q]`, pattern)
}

// jsString quotes s as a JavaScript string literal
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func countJS(pattern string) string {
	return fmt.Sprintf(`document.querySelectorAll(%s).length`, jsString(anchorSelector(pattern)))
}

func activateJS(vocabulary []string, pattern string) string {
	words := make([]string, 0, len(vocabulary))
	for _, w := range vocabulary {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	wordsJSON, _ := json.Marshal(words)

	return fmt.Sprintf(`
	(() => {
		const words = %s;
		const pattern = %s;
		const controls = document.querySelectorAll('button, a, [role="button"]');
		for (const el of controls) {
			if (el.offsetParent === null) continue;
			if (el.tagName === 'A' && (el.getAttribute('href') || '').includes(pattern)) continue;
			const text = (el.innerText || el.textContent || '').trim().toLowerCase();
			if (!text || text.length > 40) continue;
			if (words.some(w => text.includes(w))) {
				el.click();
				return true;
			}
		}
		return false;
	})()`, wordsJSON, jsString(pattern))
}

func waitJS(pattern string, baseline int, timeout time.Duration) string {
	return fmt.Sprintf(`
	new Promise(resolve => {
		const count = () => document.querySelectorAll(%s).length;
		if (count() > %d) return resolve(count());
		const obs = new MutationObserver(() => {
			if (count() > %d) {
				obs.disconnect();
				clearTimeout(timer);
				resolve(count());
			}
		});
		const timer = setTimeout(() => { obs.disconnect(); resolve(count()); }, %d);
		obs.observe(document.body, {subtree: true, childList: true});
	})`, jsString(anchorSelector(pattern)), baseline, baseline, timeout.Milliseconds())
}

func fetchJS(link string) string {
	return fmt.Sprintf(`
	fetch(%s, {credentials: 'include'}).then(r => {
		if (!r.ok) throw new Error('HTTP ' + r.status);
		return r.text();
	})`, jsString(link))
}
