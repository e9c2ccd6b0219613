package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chromedp/chromedp"
)

// runCheck evaluates a selector|state assertion.
func runCheck(ctx context.Context, sel, state string) result {
	name := fmt.Sprintf("check(%s|%s)", sel, state)

	switch {
	case state == "hidden":
		var hidden bool
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				if (!el) return true;
				return getComputedStyle(el).display === 'none';
			})()
		`, escJS(sel)), &hidden))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: hidden, detail: fmt.Sprintf("hidden=%v", hidden)}

	case state == "visible":
		var visible bool
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				if (!el) return false;
				return getComputedStyle(el).display !== 'none';
			})()
		`, escJS(sel)), &visible))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: visible, detail: fmt.Sprintf("visible=%v", visible)}

	case state == "exists" || state == "gone":
		var exists bool
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`document.querySelector('%s') !== null`, escJS(sel)), &exists))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		if state == "gone" {
			return result{name: name, pass: !exists, detail: fmt.Sprintf("gone=%v", !exists)}
		}
		return result{name: name, pass: exists, detail: fmt.Sprintf("exists=%v", exists)}

	case strings.HasPrefix(state, "text="):
		expected := strings.TrimPrefix(state, "text=")
		var actual string
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				return el ? el.textContent.trim() : '';
			})()
		`, escJS(sel)), &actual))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: strings.Contains(actual, expected), detail: fmt.Sprintf("got: %s", truncate(actual, 60))}

	case strings.HasPrefix(state, "count"):
		var count int
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll('%s').length`, escJS(sel)), &count))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: evalCountExpr(state, count), detail: fmt.Sprintf("count=%d", count)}

	default:
		return result{name: name, pass: false, detail: fmt.Sprintf("unknown state: %s", state)}
	}
}

// evalCountExpr handles count>N, count>=N, count=N, count<=N and count<N.
func evalCountExpr(expr string, actual int) bool {
	expr = strings.TrimPrefix(expr, "count")
	for _, op := range []string{">=", "<=", ">", "<", "="} {
		rest, ok := strings.CutPrefix(expr, op)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false
		}
		switch op {
		case ">=":
			return actual >= n
		case "<=":
			return actual <= n
		case ">":
			return actual > n
		case "<":
			return actual < n
		default:
			return actual == n
		}
	}
	return false
}

// parseViewport reads "WxH". ok is false for an empty or malformed value.
func parseViewport(s string) (w, h int64, ok bool) {
	ws, hs, found := strings.Cut(s, "x")
	if !found {
		return 0, 0, false
	}
	wi, err1 := strconv.Atoi(ws)
	hi, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || wi <= 0 || hi <= 0 {
		return 0, 0, false
	}
	return int64(wi), int64(hi), true
}

// report prints one line per result and returns the failure count.
func report(w io.Writer, results []result) int {
	fmt.Fprintln(w)
	failed := 0
	for _, r := range results {
		icon := "✓"
		if !r.pass {
			icon = "✗"
			failed++
		}
		fmt.Fprintf(w, "  %s %s: %s\n", icon, r.name, r.detail)
	}
	fmt.Fprintf(w, "\n  %d/%d passed\n", len(results)-failed, len(results))
	return failed
}

func escJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}
