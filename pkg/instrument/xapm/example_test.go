package xapm_test

import (
	"context"
	"fmt"
	"time"

	"github.com/omeyang/tracekit/pkg/config/xconf"
	"github.com/omeyang/tracekit/pkg/instrument/xapm"
	"github.com/omeyang/tracekit/pkg/intercept/xhook"
	"github.com/omeyang/tracekit/pkg/observability/xlog"
	"github.com/omeyang/tracekit/pkg/observability/xspan"
)

// ExampleInit 演示装配运行时并拦截宿主操作。
func ExampleInit() {
	settings := xconf.DefaultSettings()
	settings.Service = "comfy-render"
	settings.StatsInterval = time.Hour

	sink := xspan.NewMemorySink()
	rt, err := xapm.Init(context.Background(),
		xapm.WithSettings(settings),
		xapm.WithLogger(xlog.Discard()),
		xapm.WithSink(sink),
	)
	if err != nil {
		fmt.Println("init:", err)
		return
	}
	defer rt.Shutdown(context.Background())

	host := xhook.NewMapHost()
	host.Set("executor.execute", func(ctx context.Context, args ...any) (any, error) {
		return "rendered", nil
	})

	applied, err := rt.Instrument(host, xapm.TargetSpec{
		Target:   "executor.execute",
		SpanName: "workflow.execute",
		Resource: "render",
	})
	if err != nil {
		fmt.Println("instrument:", err)
		return
	}
	fmt.Println("applied:", applied)

	result, _ := host.Call(context.Background(), "executor.execute")
	fmt.Println("result:", result)

	rec := sink.Records()[0]
	fmt.Println("span:", rec.Name, rec.Status)
	fmt.Println("executed:", rt.Counters().Snapshot().Executed)

	// Output:
	// applied: 1
	// result: rendered
	// span: workflow.execute success
	// executed: 1
}
