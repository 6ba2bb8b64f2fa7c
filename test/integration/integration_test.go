//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/gin-gonic/gin"

	"github.com/pluto-finance/ledger/config"
	"github.com/pluto-finance/ledger/internal/infra/dependency"
	"github.com/pluto-finance/ledger/test/integration/mock"
)

// TestFeatures runs all BDD feature tests.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1, // Run sequentially for database tests
		Randomize:   0, // Don't randomize for predictable results
		Strict:      true,
		TestingT:    t,
	}

	// Allow tag filtering via environment variable
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		Name:                 "ledger-api",
		ScenarioInitializer:  InitializeScenario,
		TestSuiteInitializer: InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// testContext holds the test state for each scenario.
type testContext struct {
	server       *httptest.Server
	client       *http.Client
	db           *mock.Db
	response     *http.Response
	responseBody []byte
}

var tc *testContext

// InitializeTestSuite sets up the shared server before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		_ = os.Setenv("ENV", "test")
		gin.SetMode(gin.TestMode)

		db := mock.NewDb()
		redisClient := mock.NewRedis()

		injector := dependency.NewInjector(config.Load(), db.DbConn, redisClient)
		engine := injector.Router.Setup("test")

		tc = &testContext{
			server: httptest.NewServer(engine),
			client: &http.Client{},
			db:     db,
		}
	})

	ctx.AfterSuite(func() {
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := tc.db.Reset(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return ctx, err
		}
		tc.response = nil
		tc.responseBody = nil
		return ctx, nil
	})

	ctx.Step(`^the following accounts exist:$`, theFollowingAccountsExist)
	ctx.Step(`^the following transactions exist:$`, theFollowingTransactionsExist)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
}

func theFollowingAccountsExist(table *godog.Table) error {
	for _, row := range table.Rows {
		body := map[string]any{"name": row.Cells[0].Value}
		if len(row.Cells) > 1 && row.Cells[1].Value != "" {
			body["initial_balance"] = row.Cells[1].Value
		}
		if err := postJSON("/api/v1/accounts", body); err != nil {
			return err
		}
	}
	return nil
}

func theFollowingTransactionsExist(table *godog.Table) error {
	header := table.Rows[0]
	for _, row := range table.Rows[1:] {
		body := map[string]any{}
		for i, cell := range header.Cells {
			value := row.Cells[i].Value
			if cell.Value == "account_id" {
				id, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid account_id %q: %w", value, err)
				}
				body[cell.Value] = id
				continue
			}
			body[cell.Value] = value
		}
		if err := postJSON("/api/v1/transactions", body); err != nil {
			return err
		}
	}
	return nil
}

func postJSON(path string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := tc.client.Post(tc.server.URL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("seed request to %s failed with status %d: %s", path, resp.StatusCode, data)
	}
	return nil
}

func iSendARequestTo(method, path string) error {
	return sendRequest(method, path, nil)
}

func iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return sendRequest(method, path, strings.NewReader(body.Content))
}

func sendRequest(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func theResponseStatusShouldBe(expected int) error {
	if tc.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(path, expected string) error {
	value, err := lookupField(path)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected field %q to be %q, got %q (body: %s)", path, expected, got, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldHaveItems(path string, expected int) error {
	value, err := lookupField(path)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array (body: %s)", path, tc.responseBody)
	}
	if len(items) != expected {
		return fmt.Errorf("expected field %q to have %d items, got %d", path, expected, len(items))
	}
	return nil
}

func theResponseShouldContain(substr string) error {
	if !strings.Contains(string(tc.responseBody), substr) {
		return fmt.Errorf("expected response to contain %q, body: %s", substr, tc.responseBody)
	}
	return nil
}

// lookupField walks a dot-separated path through the JSON response body.
// Numeric segments index into arrays.
func lookupField(path string) (any, error) {
	var body any
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w (body: %s)", err, tc.responseBody)
	}

	current := body
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response (body: %s)", path, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("invalid array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %q at segment %q", path, segment)
		}
	}
	return current, nil
}
