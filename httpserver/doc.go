/*
Package httpserver runs the biosdk HTTP API and its Prometheus metrics
listener.

The API router mounts the routes of a RouteRegistrar (the biosdk handler)
next to the operational endpoints:

  - GET /livez - Liveness check
  - GET /readyz - Readiness check, 503 while draining
  - GET /drain - Mark the server as not ready
  - GET /undrain - Mark the server as ready
  - /debug/pprof - Profiling, when EnablePprof is set

Every API request is access logged through the flashbots httplogger
middleware. Metrics are served on a separate listener at MetricsAddr.

# Example Usage

	metricsSrv, _ := metrics.New(common.PackageName, ":8090")
	p, _ := provider.New(provider.Config{Engine: e, Log: logger, Metrics: metricsSrv.Metrics})

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               ":9099",
		MetricsAddr:              ":8090",
		Log:                      logger,
		DrainDuration:            45 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
	}, biosdkhandler.NewHandler(p, "sample", logger), metricsSrv)
	if err != nil {
		return err
	}
	srv.RunInBackground()
	defer srv.Shutdown()
*/
package httpserver
