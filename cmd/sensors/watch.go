package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/koninico/iot-kit/cmd/sensors/console"
)

// watch runs read immediately and then every interval seconds until the
// process receives an interrupt. Ctrl-C is a clean exit; read errors
// abort the loop.
func watch(ctx context.Context, interval int, read func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := read(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			console.PInfof(console.PictoFinish, "interrupted, exiting")
			return nil
		case <-ticker.C:
			if err := read(ctx); err != nil {
				return err
			}
		}
	}
}
