//go:build js && wasm

package main

import (
	"time"

	"github.com/syumai/workers"

	"github.com/Anshumanformal/apirelay/internal/apiclient"
	"github.com/Anshumanformal/apirelay/internal/config"
	"github.com/Anshumanformal/apirelay/internal/env"
	"github.com/Anshumanformal/apirelay/internal/logger"
	"github.com/Anshumanformal/apirelay/internal/server"
)

var srv *server.Server

func init() {
	endpoint := env.GetOrDefault("API_ENDPOINT", config.DefaultEndpoint)

	var opts []apiclient.Option
	if token, ok := env.Get("API_TOKEN"); ok {
		opts = append(opts, apiclient.WithToken(token))
	}
	if raw, ok := env.Get("HTTP_TIMEOUT"); ok {
		if d, err := time.ParseDuration(raw); err == nil {
			opts = append(opts, apiclient.WithTimeout(d))
		} else {
			logger.Get().Warn().Err(err).Str("value", raw).Msg("Invalid HTTP timeout, using default")
		}
	}

	api, err := apiclient.New(endpoint, opts...)
	if err != nil {
		logger.Get().Error().Err(err).Str("endpoint", endpoint).Msg("Failed to create API client")
		// Continue anyway, the trigger route will report the failure
	}

	srv = server.NewServer(api)
}

func main() {
	// Serve using workers - it handles all the HTTP server setup
	workers.Serve(srv)
}
