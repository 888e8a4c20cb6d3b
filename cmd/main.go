package main

import (
	"context"
	"net/http"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/theopenshift/openshift-web/internal/app"
	"github.com/theopenshift/openshift-web/internal/config"
	"github.com/theopenshift/openshift-web/internal/telemetry"
	"github.com/theopenshift/openshift-web/internal/utils"
)

const corsLowSecurityAllowedOriginLocalhost = "http://localhost:3000"

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	shutdownTracing := telemetry.Setup(cfg.AppName)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			utils.Logger.WithError(err).Warn("Tracer shutdown failed")
		}
	}()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize openshift-web:", err)
	}
	defer application.Close()

	router := application.Router()
	application.StartBackground()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, corsLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(co.Handler(router), cfg.AppName)

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		utils.Logger.Fatal("openshift-web failed to start:", err)
	}
}
