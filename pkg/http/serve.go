package xhttp

import (
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"slices"
	"syscall"
	"time"

	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/valyala/fasthttp"
)

var DefaultServerOption = ServerOption{
	IdleTimeout:           time.Second * 10,
	MaxIdleWorkerDuration: time.Minute * 1,
	TCPKeepalivePeriod:    time.Minute * 120, // linux default
	MaxRequestBodySize:    4 * 1024 * 1024,   // bulk imports stay well below 4MB
	ReadBufferSize:        1024 * 8,
	WriteBufferSize:       1024 * 8,
	ReadTimeout:           time.Millisecond * 2500,
	WriteTimeout:          time.Second * 30, // PDF responses can be slow on cold cache
	Concurrency:           30_000,
	MaxConnsPerIP:         10_000,
}

type Server = fasthttp.Server

type ServerOption struct {
	IdleTimeout           time.Duration
	MaxIdleWorkerDuration time.Duration
	TCPKeepalivePeriod    time.Duration
	MaxRequestBodySize    int
	ReadBufferSize        int
	WriteBufferSize       int
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	Concurrency           int
	MaxConnsPerIP         int
}

type Engine struct {
	*Router
	*Server
	middle []MiddlewareFunc
}

func newServer(o ServerOption) *fasthttp.Server {
	return &fasthttp.Server{
		Handler: func(ctx *RequestCtx) {
			ctx.Error(StatusText(StatusNotFound), StatusNotFound)
		},
		Concurrency:                        o.Concurrency,
		ReadBufferSize:                     o.ReadBufferSize,
		WriteBufferSize:                    o.WriteBufferSize,
		ReadTimeout:                        o.ReadTimeout,
		WriteTimeout:                       o.WriteTimeout,
		IdleTimeout:                        o.IdleTimeout,
		MaxConnsPerIP:                      o.MaxConnsPerIP,
		MaxIdleWorkerDuration:              o.MaxIdleWorkerDuration,
		TCPKeepalivePeriod:                 o.TCPKeepalivePeriod,
		MaxRequestBodySize:                 o.MaxRequestBodySize,
		TCPKeepalive:                       true,
		DisablePreParseMultipartForm:       true,
		LogAllErrors:                       true,
		SleepWhenConcurrencyLimitsExceeded: 100 * time.Millisecond,
		NoDefaultServerHeader:              true,
		NoDefaultContentType:               true,
		CloseOnShutdown:                    true,
		Logger:                             logger.GetLogger(),
	}
}

func NewServer(options ServerOption) *Engine {
	return &Engine{
		Server: newServer(options),
		Router: CreateDefaultRouter(),
	}
}

func CreateServer() *Engine {
	return NewServer(DefaultServerOption)
}

func (e *Engine) ListenAndServe(addr string) error {
	e.doRouting()
	e.Server.Logger.Printf("[xhttp] server is listening on %s", addr)
	return e.Server.ListenAndServe(addr)
}

func (e *Engine) doRouting() {
	// log all registered routes grouped by method
	for method, route := range e.Router.List() {
		for _, r := range route {
			e.Server.Logger.Printf("[xhttp] method: %s, path: %s", method, r)
		}
	}
	e.Server.Handler = e.Router.Handler
	// middlewares run in registration order, so wrap in reverse
	slices.Reverse(e.middle)
	for i, m := range e.middle {
		e.Server.Handler = m(e.Server.Handler)
		e.Server.Logger.Printf("[xhttp] middleware %d registered - %s", i+1, runtime.FuncForPC(reflect.ValueOf(m).Pointer()).Name())
	}
}

// Use adds middleware to the chain which is run for every request.
func (e *Engine) Use(middleware MiddlewareFunc) {
	e.middle = append(e.middle, middleware)
}

func (e *Engine) CloseOnSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig
		e.Shutdown()
	}()
}

// Shutdown gracefully shuts down the server without interrupting any
// active connections.
func (e *Engine) Shutdown() {
	e.Server.Logger.Printf("[xhttp] server is shutting down, process id: %d", os.Getpid())
	if err := e.Server.Shutdown(); err != nil {
		e.Server.Logger.Printf("[xhttp] error while shutting down: %v", err)
	}
}
