package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/container"
)

func main() {
	c := container.New(context.Background())
	defer c.Close()

	r := c.Router()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(r)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := c.Scheduler()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to create reminder scheduler")
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + c.Settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.WithError(err).Error("Server shutdown failed")
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		config.Logger.WithError(err).Warn("Reminder scheduler did not stop in time")
	}
}
