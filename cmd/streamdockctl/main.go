// Command streamdockctl discovers and drives attached StreamDock
// devices from the command line: listing known models, and running the
// device manager until interrupted.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/streamdock-hub/go-streamdock/catalog"
	"github.com/streamdock-hub/go-streamdock/config"
	"github.com/streamdock-hub/go-streamdock/device"
	"github.com/streamdock-hub/go-streamdock/manager"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "streamdockctl",
		Short: "Discover and drive StreamDock HID devices",
	}
	root.AddCommand(newListCmd(), newRunCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-models",
		Short: "List every StreamDock model this build recognizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range catalog.Models() {
				fmt.Printf("%-22s vid=0x%04x pid=0x%04x keys=%d\n", d.Model, d.VendorID, d.ProductID, d.Geometry.KeyCount)
			}
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch for StreamDock devices and keep them driven until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			m := manager.New(manager.Options{
				PollIntervalSeconds: cfg.GetHotplugPollInterval(),
				DevicePolicy: device.Policy{
					HeartbeatInterval:   cfg.GetHeartbeatInterval(),
					SchedulerTickMillis: cfg.SchedulerTickMillis,
				},
			}, onConnect, onDisconnect)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Println("[streamdockctl] watching for devices, ctrl-C to stop")
			m.Run(ctx)
			return nil
		},
	}
}

func onConnect(d *device.Device) {
	log.Printf("[streamdockctl] connected: %s at %s", d.Descriptor().Model, d.Path)
}

func onDisconnect(path string) {
	log.Printf("[streamdockctl] disconnected: %s", path)
}
