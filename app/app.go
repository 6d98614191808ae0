package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var ErrSmoketestFailed = errors.New("smoketest step failed")

// RunIDHeader is attached to every request so backend logs can be
// correlated with a harness run.
const RunIDHeader = "X-Smoke-Run"

type resolver interface {
	Resolve(path string, params map[string]string, intParams []string) (string, error)
}

type limiter interface {
	Wait(context.Context) error
}

type App struct {
	Config   Config
	Steps    []Step
	Results  *Results
	RunID    string
	resolver resolver
	limiter  limiter
}

func NewApp(cfg Config, resolver resolver) *App {
	return &App{
		Config:   cfg,
		Steps:    SmokeSequence(cfg.LeaderboardSort),
		Results:  &Results{Findings: []Finding{}},
		RunID:    uuid.NewString(),
		resolver: resolver,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

// Run executes every step in order and stops at the first failure. The
// failing step is recorded in Results before the error is returned; the
// caller decides what exiting looks like.
func (a *App) Run() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	log.Printf("Starting smoketest run %s against %s\n\n", a.RunID, a.Config.BaseURL)

	ctx := context.Background()
	for _, step := range a.Steps {
		if err := a.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("error while rate limiting: %w", err)
		}

		log.Printf("Checking %s: %s %s\n", step.Name, step.HTTPMethod, step.RelativePath)

		if err := a.RunStep(step); err != nil {
			log.Println(err)

			return fmt.Errorf("%s: %w", step.Name, ErrSmoketestFailed)
		}

		log.Printf("Success: %s\n\n", step.Name)
	}

	log.Printf("Passed %d of %d steps\n", len(a.Steps), len(a.Steps))
	log.Println("All smoketests passed successfully!")

	return nil
}

// RunStep issues a single step's request and evaluates its pass condition.
func (a *App) RunStep(step Step) error {
	relativePath, err := a.resolver.Resolve(step.RelativePath, step.PathParams, step.IntPathParams)
	if err != nil {
		a.addFinding(step, "", "", "", err)

		return fmt.Errorf("could not resolve path: %w", err)
	}

	url := a.Config.BaseURL + relativePath
	body, err := a.callTarget(step, url)
	if err != nil {
		a.addFinding(step, url, "", "", err)

		return err
	}

	if err := CheckBody(body, step.Check); err != nil {
		a.addFinding(step, url, string(body), "", err)

		return fmt.Errorf("%w; response: %s", err, body)
	}

	if step.ExpectedBody != nil {
		diff, err := CompareBodyKey(body, step.BodyKey, *step.ExpectedBody)
		if err != nil {
			a.addFinding(step, url, string(body), diff, err)

			return err
		}
	}

	if a.Config.EchoJSON {
		pretty, err := PrettyJSON(body)
		if err != nil {
			// The expect-missing step can pass on a body that is not
			// JSON at all; echo it as-is.
			pretty = string(body)
		}

		log.Printf("%s response:\n%s\n", step.Name, pretty)
	}

	return nil
}

func (a *App) callTarget(step Step, url string) ([]byte, error) {
	res, err := a.makeHTTPRequest(step, url)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	return body, nil
}

func (a *App) makeHTTPRequest(step Step, url string) (*http.Response, error) {
	req, err := a.buildRequest(step, url)
	if err != nil {
		return nil, err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: error making http request: %w", err)
	}

	return res, nil
}

func (a *App) buildRequest(step Step, url string) (*http.Request, error) {
	var req *http.Request
	var err error

	if step.RequestBody != nil {
		req, err = http.NewRequest(step.HTTPMethod, url, strings.NewReader(*step.RequestBody))
	} else {
		req, err = http.NewRequest(step.HTTPMethod, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("client: could not create request: %w", err)
	}

	a.setHeaders(req, step)

	return req, nil
}

func (a *App) setHeaders(req *http.Request, step Step) {
	for key, value := range a.Config.Headers.Global {
		req.Header.Set(key, value)
	}

	for key, value := range step.RequestHeaders {
		req.Header.Set(key, value)
	}

	if step.RequestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set(RunIDHeader, a.RunID)
}

func (a *App) addFinding(step Step, url, body, diff string, err error) {
	a.Results.Findings = append(
		a.Results.Findings,
		Finding{Step: step.Name, URL: url, Error: fmt.Sprint(err), Body: body, Diff: diff},
	)
}
