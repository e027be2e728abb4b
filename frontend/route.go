package frontend

import (
	"net/http"
	"path/filepath"
	"sync"

	"github.com/dpapathanasiou/go-recaptcha"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wow_check/analysis"
)

type Options struct {
	Gateway         analysis.Gateway
	OutDir          string // rendered chart root, served under /charts
	PublicDir       string // static assets
	RecaptchaSecret string // empty disables the gate
}

var (
	routeOpt Options

	websocketUpgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	websockEmptyClosure = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

	workerOnce sync.Once
)

func Route(g *gin.Engine, opt Options) {
	routeOpt = opt
	if routeOpt.PublicDir == "" {
		routeOpt.PublicDir = "./frontend/public/"
	}

	if routeOpt.RecaptchaSecret != "" {
		recaptcha.Init(routeOpt.RecaptchaSecret)
	}

	workerOnce.Do(func() {
		go queueWorker()
	})

	g.Use(gin.ErrorLogger())
	g.Use(gin.Recovery())

	g.NoMethod(func(c *gin.Context) { c.Redirect(http.StatusTemporaryRedirect, "/") })
	g.NoRoute(func(c *gin.Context) { c.Redirect(http.StatusTemporaryRedirect, "/") })

	g.StaticFile("/", filepath.Join(routeOpt.PublicDir, "index.htm"))
	g.Static("/static", filepath.Join(routeOpt.PublicDir, "static"))
	g.Static("/charts", routeOpt.OutDir)
	g.GET("/metrics", gin.WrapH(promhttp.Handler()))
	g.GET("/analysis", routeRequest)
}
