package app

import (
	"context"
	"net/http"

	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgconfig"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkglog"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgmetric"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgrouter"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgroutine"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	seq       pkguid.NumberID
	goroutine *pkgroutine.Manager
	metrics   *pkgmetric.Ingest

	// resources

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
