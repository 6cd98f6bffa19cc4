package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/container"
)

// Runs one reminder sweep per scheduled event.
func main() {
	c := container.New(context.Background())
	defer c.Close()

	lambda.Start(func(ctx context.Context, ev events.CloudWatchEvent) error {
		log := config.WithContext(ctx).WithField("event_id", ev.ID)

		sent, err := c.Dispatcher.Sweep(ctx)
		if err != nil {
			log.WithError(err).Warn("Reminder sweep finished with errors")
			return err
		}

		log.WithField("sent", sent).Info("Reminder sweep done")
		return nil
	})
}
