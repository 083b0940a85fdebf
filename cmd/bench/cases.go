// README: Smoke checks for the PathPlanner API; HTTP flow, metrics, Redis session key and load.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionHeader = "X-Session-ID"

type Runner struct {
	cfg       Config
	httpc     *http.Client
	redis     *redis.Client
	sessionID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	jar, _ := cookiejar.New(nil)
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second, Jar: jar},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	search := map[string]any{"source": r.cfg.Source, "destination": r.cfg.Destination, "preference": "Cheapest"}

	var modelCallsAfterSearch float64
	var searched bool

	return []TestCase{
		httpCaseMethod("Env: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("Env: metrics exposed", http.MethodGet, base+"/metrics", nil, []int{200}, nil),
		httpCaseMethod("API: languages", http.MethodGet, base+"/api/languages", nil, []int{200}, nil),
		httpCaseMethod("API: options before search (-> 404)", http.MethodGet, base+"/api/options", nil, []int{404}, nil),
		httpCase("API: search missing destination (-> 400)", base+"/api/search", map[string]any{"source": "Delhi"}, []int{400}, nil),
		{
			Name:  "API: search",
			Focus: "live model call; 502/422 count as pending",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.do(ctx, http.MethodPost, base+"/api/search", search)
				latency := time.Since(start)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				switch status {
				case http.StatusOK:
					searched = true
					calls, err := r.modelCalls(ctx)
					if err != nil {
						return Result{Status: "FAIL", Latency: latency, Note: err.Error()}
					}
					modelCallsAfterSearch = calls
					return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("model_calls=%.0f", calls)}
				case http.StatusBadGateway, http.StatusUnprocessableEntity:
					return Result{Status: "PENDING", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			},
		},
		{
			Name:  "API: re-sort without re-query",
			Focus: "settings change issues no model call",
			Run: func(ctx context.Context, r *Runner) Result {
				if !searched {
					return Result{Status: "SKIP", Note: "no successful search"}
				}
				start := time.Now()
				status, _, err := r.do(ctx, http.MethodPut, base+"/api/settings", map[string]any{"sort_by": "Shortest Duration"})
				latency := time.Since(start)
				if err != nil || status != http.StatusOK {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d err=%v", status, err)}
				}
				calls, err := r.modelCalls(ctx)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if calls != modelCallsAfterSearch {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("model calls %.0f -> %.0f", modelCallsAfterSearch, calls)}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		httpCaseMethod("API: unknown sort mode (-> 400)", http.MethodPut, base+"/api/settings", map[string]any{"sort_by": "alphabetical"}, []int{400}, nil),
		httpCaseMethod("API: summary", http.MethodGet, base+"/api/summary", nil, []int{200}, []int{404}),
		httpCaseMethod("API: summary audio", http.MethodGet, base+"/api/summary/audio", nil, []int{200}, []int{404, 502, 503}),
		{
			Name:  "Redis: session key",
			Focus: "session stored under pathplanner:session:<id>",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				if r.sessionID == "" {
					return Result{Status: "FAIL", Note: "no session id seen"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				ttl, err := r.redis.TTL(ctx, "pathplanner:session:"+r.sessionID).Result()
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if ttl <= 0 {
					return Result{Status: "FAIL", Note: "session key missing or without TTL"}
				}
				return Result{Status: "PASS", Note: "ttl=" + ttl.String()}
			},
		},
		{
			Name:  "Perf: concurrent options reads",
			Focus: "re-presenting stored results under load",
			Run: func(ctx context.Context, r *Runner) Result {
				if !searched {
					return Result{Status: "SKIP", Note: "no successful search"}
				}
				return perfLoad(ctx, r, base+"/api/options")
			},
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	if id := resp.Header.Get(sessionHeader); id != "" {
		r.sessionID = id
	}
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

// modelCalls sums pathplanner_model_requests_total across labels.
func (r *Runner) modelCalls(ctx context.Context) (float64, error) {
	status, body, err := r.do(ctx, http.MethodGet, r.cfg.BaseURL+"/metrics", nil)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("metrics status=%d", status)
	}
	var total float64
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "pathplanner_model_requests_total{") {
			continue
		}
		fields := strings.Fields(line)
		v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, sc.Err()
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.do(ctx, method, url, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			if contains(okStatuses, status) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			if contains(pendingStatuses, status) {
				return Result{Status: "PENDING", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	var ok, failed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				req.Header.Set(sessionHeader, r.sessionID)
				resp, err := r.httpc.Do(req)
				if err != nil {
					if ctx.Err() == nil {
						failed.Add(1)
					}
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					ok.Add(1)
				} else {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	note := fmt.Sprintf("ok=%d failed=%d rps=%.1f", ok.Load(), failed.Load(), float64(ok.Load())/elapsed.Seconds())
	if failed.Load() > 0 || ok.Load() == 0 {
		return Result{Status: "FAIL", Latency: elapsed, Note: note}
	}
	return Result{Status: "PASS", Latency: elapsed, Note: note}
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
