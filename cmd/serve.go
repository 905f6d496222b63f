package cmd

import (
	"github.com/lepinkainen/marquee/internal/server"
)

var runServer = server.Run

// ServeCmd runs the HTTP API
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to server.addr)"`
}

func (s *ServeCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	store, err := app.OpenStats()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	addr := s.Addr
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	handler := server.NewHandler(svc, store, app.Config.Home.TopCategories)
	router := server.NewRouter(handler, app.Config.Server.AllowedOrigins)
	return runServer(app.Context(), addr, router)
}
