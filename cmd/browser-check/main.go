// Command browser-check loads portal pages in headless Chrome and asserts
// on the rendered DOM.
//
// Usage:
//
//	go run ./cmd/browser-check -url http://localhost:4241/
//	go run ./cmd/browser-check -url http://localhost:4241/login -check '#email|visible' -check '.form-error|gone'
//	go run ./cmd/browser-check -url http://localhost:4241/dashboard -login -check '.summary-card|count=4'
//	go run ./cmd/browser-check -url http://localhost:4241/products -login -viewport 375x812 -check '.product-card|count>0'
//	go run ./cmd/browser-check -url http://localhost:4241/products -login -eval 'document.title.includes("InvestX")'
//	go run ./cmd/browser-check -url http://localhost:4241/dashboard -login -screenshot /tmp/dash.png
//
// With -login the checker signs in through the login form first, using
// INVESTX_EMAIL and INVESTX_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/joho/godotenv"
)

// multiFlag allows repeated -check, -click or -eval flags.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type result struct {
	name   string
	pass   bool
	detail string
}

func main() {
	var (
		target     string
		viewport   string
		screenshot string
		waitMs     int
		login      bool
		checks     multiFlag
		clicks     multiFlag
		evals      multiFlag
	)

	flag.StringVar(&target, "url", "", "URL to test (required)")
	flag.StringVar(&viewport, "viewport", "", "Viewport as WxH, e.g. 375x812")
	flag.StringVar(&screenshot, "screenshot", "", "Save screenshot to path")
	flag.IntVar(&waitMs, "wait", 500, "Wait ms after load")
	flag.BoolVar(&login, "login", false, "Sign in with INVESTX_EMAIL / INVESTX_PASSWORD before loading -url")
	flag.Var(&checks, "check", "selector|state  (state: visible, hidden, exists, gone, text=X, count>N)")
	flag.Var(&clicks, "click", "CSS selector to click (in order, before -check)")
	flag.Var(&evals, "eval", "JS expression that must return truthy")
	flag.Parse()

	if target == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -url is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	defer ctxCancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, 30*time.Second)
	defer timeoutCancel()

	errs := &jsErrors{}
	chromedp.ListenTarget(ctx, errs.listen)

	var actions []chromedp.Action
	if w, h, ok := parseViewport(viewport); ok {
		actions = append(actions, chromedp.EmulateViewport(w, h))
	}

	if login {
		loginActions, err := signIn(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(2)
		}
		actions = append(actions, loginActions...)
	}

	actions = append(actions,
		chromedp.Navigate(target),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Sleep(time.Duration(waitMs)*time.Millisecond),
	)

	if err := chromedp.Run(ctx, actions...); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: navigate %s: %v\n", target, err)
		os.Exit(1)
	}

	var results []result
	results = append(results, errs.result())

	if login {
		var location string
		err := chromedp.Run(ctx, chromedp.Location(&location))
		results = append(results, checkNotRedirected(target, location, err))
	}

	for _, sel := range clicks {
		name := fmt.Sprintf("click(%s)", sel)
		err := chromedp.Run(ctx,
			chromedp.Click(sel, chromedp.ByQuery),
			chromedp.Sleep(300*time.Millisecond),
		)
		if err != nil {
			results = append(results, result{name: name, pass: false, detail: err.Error()})
			continue
		}
		results = append(results, result{name: name, pass: true, detail: "ok"})
	}

	for _, c := range checks {
		sel, state, ok := strings.Cut(c, "|")
		if !ok {
			results = append(results, result{name: c, pass: false, detail: "bad format, need selector|state"})
			continue
		}
		results = append(results, runCheck(ctx, sel, state))
	}

	for _, expr := range evals {
		name := fmt.Sprintf("eval(%s)", truncate(expr, 50))
		var val interface{}
		if err := chromedp.Run(ctx, chromedp.Evaluate(expr, &val)); err != nil {
			results = append(results, result{name: name, pass: false, detail: err.Error()})
			continue
		}
		results = append(results, result{name: name, pass: isTruthy(val), detail: fmt.Sprintf("returned: %v", val)})
	}

	if screenshot != "" {
		var buf []byte
		if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: screenshot failed: %v\n", err)
		} else if err := os.WriteFile(screenshot, buf, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: screenshot not saved: %v\n", err)
		} else {
			fmt.Printf("  screenshot: %s\n", screenshot)
		}
	}

	if failed := report(os.Stdout, results); failed > 0 {
		os.Exit(1)
	}
}

// signIn returns the actions that submit the login form on the same host as target.
func signIn(target string) ([]chromedp.Action, error) {
	email, password := os.Getenv("INVESTX_EMAIL"), os.Getenv("INVESTX_PASSWORD")
	if email == "" || password == "" {
		return nil, fmt.Errorf("-login needs INVESTX_EMAIL and INVESTX_PASSWORD")
	}
	loginURL, err := loginURLFor(target)
	if err != nil {
		return nil, err
	}
	return []chromedp.Action{
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible("#email", chromedp.ByQuery),
		chromedp.SendKeys("#email", email, chromedp.ByQuery),
		chromedp.SendKeys("#password", password, chromedp.ByQuery),
		chromedp.Submit("form.form", chromedp.ByQuery),
		chromedp.WaitVisible(".summary", chromedp.ByQuery),
	}, nil
}

func loginURLFor(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid -url %q", target)
	}
	return u.Scheme + "://" + u.Host + "/login", nil
}

// checkNotRedirected fails when a signed-in visit ended up somewhere other
// than the requested page, which means the session guard bounced it.
func checkNotRedirected(target, location string, err error) result {
	const name = "session"
	if err != nil {
		return result{name: name, pass: false, detail: err.Error()}
	}
	want, _ := url.Parse(target)
	got, perr := url.Parse(location)
	if perr != nil {
		return result{name: name, pass: false, detail: perr.Error()}
	}
	if want != nil && got.Path != want.Path {
		return result{name: name, pass: false, detail: fmt.Sprintf("redirected to %s", got.Path)}
	}
	return result{name: name, pass: true, detail: "signed in"}
}

// jsErrors collects uncaught exceptions and console errors from the page.
type jsErrors struct {
	mu   sync.Mutex
	msgs []string
}

func (j *jsErrors) listen(ev interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()

	switch e := ev.(type) {
	case *runtime.EventExceptionThrown:
		desc := e.ExceptionDetails.Text
		if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
			desc = e.ExceptionDetails.Exception.Description
		}
		// chromedp.Evaluate trips the portal's CSP
		if strings.Contains(desc, "Content Security Policy") {
			return
		}
		j.msgs = append(j.msgs, desc)
	case *runtime.EventConsoleAPICalled:
		if e.Type != runtime.APITypeError {
			return
		}
		var parts []string
		for _, arg := range e.Args {
			if arg.Value != nil {
				parts = append(parts, string(arg.Value))
			} else if arg.Description != "" {
				parts = append(parts, arg.Description)
			}
		}
		msg := strings.Join(parts, " ")
		if msg != "" && !strings.Contains(msg, "favicon") && !strings.Contains(msg, "Content Security Policy") {
			j.msgs = append(j.msgs, msg)
		}
	}
}

func (j *jsErrors) result() result {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.msgs) > 0 {
		return result{name: "js-errors", pass: false, detail: strings.Join(j.msgs, "; ")}
	}
	return result{name: "js-errors", pass: true, detail: "none"}
}
