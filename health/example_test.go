package health_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/snipops/snippetd/health"
)

func ExampleShallowHandler() {
	rec := httptest.NewRecorder()
	health.ShallowHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	fmt.Println(rec.Code, rec.Body.String())
	// Output:
	// 200 {"status":"ok"}
}

func ExampleAggregator_Run() {
	agg := health.NewAggregator(health.AggregatorConfig{Parallel: false})
	agg.Register(health.NewProbeFunc("storage", func(ctx context.Context) health.Result {
		return health.Pass()
	}))
	agg.Register(health.NewProbeFunc("cosmos", func(ctx context.Context) health.Result {
		return health.Fail("database name is not configured")
	}))

	report := agg.Run(context.Background())
	fmt.Println("status:", report.Status())
	for _, pr := range report.Results {
		fmt.Printf("%s ok=%v\n", pr.Name, pr.OK)
	}
	// Output:
	// status: error
	// storage ok=true
	// cosmos ok=false
}

func ExampleExtendedHandler() {
	agg := health.NewAggregator(health.AggregatorConfig{Parallel: false})
	agg.Register(health.NewProbeFunc("storage", func(ctx context.Context) health.Result {
		return health.Pass().WithDetails(map[string]any{"container": "snippet-input"})
	}))
	agg.Register(health.NewCosmosProbe(nil, health.CosmosProbeConfig{
		Database:  "dev-snippet-db",
		Container: "code-snippets",
	}))

	rec := httptest.NewRecorder()
	health.ExtendedHandler(agg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health_extended", nil))

	fmt.Println(rec.Code)
	fmt.Println(rec.Body.String())
	// Output:
	// 500
	// {"cosmos":{"error":"cosmos connection string is not configured","ok":false},"status":"error","storage":{"container":"snippet-input","ok":true}}
}
