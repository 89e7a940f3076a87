package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tomz197/spacedefender/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	log.Info("starting web server", zap.String("addr", addr), zap.String("ssh_host", cfg.Web.DisplayHost))
	if err := http.ListenAndServe(addr, newHandler(cfg.Web.DisplayHost, log)); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newHandler(sshHost string, log *zap.Logger) http.Handler {
	page := renderPage(sshHost)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		log.Debug("landing page", zap.String("remote", r.RemoteAddr))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	return mux
}

func renderPage(sshHost string) string {
	return strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
}
