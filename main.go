package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pleimann/duo-pad/internal/config"
	"github.com/pleimann/duo-pad/internal/hid"
	"github.com/pleimann/duo-pad/internal/menu"
	"github.com/pleimann/duo-pad/internal/runner"
	"github.com/pleimann/duo-pad/internal/ui"
	"github.com/pleimann/duo-pad/internal/utils"
)

const Version = "0.1.0"

// simulateLog receives log output while the simulator owns the terminal
const simulateLog = "duo-pad-simulate.log"

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		ui.PrintVersion(c.App.Version)
	}

	app := cli.NewApp()
	app.Name = utils.ExecutableName()
	app.Usage = "two-button gesture menu"
	app.Version = Version
	app.HideHelp = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to configuration file",
			Value: "config.yaml",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "help, h",
			Usage: "show help",
		},
	}
	app.Action = runMenu
	app.Commands = []cli.Command{
		{
			Name:     "simulate",
			Usage:    "drive the menu from the keyboard",
			HideHelp: true,
			Action:   runSimulate,
		},
		{
			Name:     "list-devices",
			Usage:    "list available HID devices",
			HideHelp: true,
			Action:   runListDevices,
		},
		{
			Name:      "set-device",
			Aliases:   []string{"select-device"},
			Usage:     "set the HID pad in the config file",
			ArgsUsage: "[vendor_id product_id]",
			HideHelp:  true,
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "help, h", Usage: "show help"},
			},
			Action: runSetDevice,
		},
		{
			Name:     "help",
			Usage:    "show this help message",
			HideHelp: true,
			Action: func(*cli.Context) error {
				ui.PrintUsage(Version)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		ui.PrintFatalError("Error", err.Error())
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(logger *zap.SugaredLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Infow("Received shutdown signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func loadConfig(c *cli.Context, logger *zap.SugaredLogger) (*config.Config, string, error) {
	path := c.GlobalString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Debugw("Loaded configuration",
		"path", path,
		"source", cfg.Input.Source,
		"backend", cfg.Display.Backend,
		"gracePeriodMs", cfg.Timing.GracePeriodMs,
		"pollIntervalMs", cfg.Timing.PollIntervalMs)

	return cfg, path, nil
}

// runMenu is the default action: run the menu on the configured hardware
func runMenu(c *cli.Context) error {
	if c.Bool("help") {
		ui.PrintUsage(Version)
		return nil
	}
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q, run %s help", c.Args().First(), utils.ExecutableName())
	}

	logger, err := utils.NewLogger(c.GlobalBool("verbose"), "")
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, path, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	app, err := newApp(ctx, cancel, cfg, path, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}

// runSimulate handles the simulate subcommand
func runSimulate(c *cli.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("simulate needs an interactive terminal")
	}

	logger := zap.NewNop().Sugar()
	if c.GlobalBool("verbose") {
		var err error
		if logger, err = utils.NewLogger(true, simulateLog); err != nil {
			return err
		}
	}
	defer logger.Sync()

	cfg, _, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	commands := runner.NewManager(logger)
	defer commands.Stop()

	builder := menu.NewBuilder(commands, menu.RowsFor(cfg.Display.Height), logger)
	nav := menu.NewNavigationStack(ctx, builder.Build(cfg.Menu), cancel, logger)

	return ui.NewSimulator(ctx, cfg, nav, logger).Run()
}

// configuredDevice reads the pad from the config file, if there is a usable one
func configuredDevice(path string) ui.DeviceID {
	cfg, err := config.Load(path)
	if err != nil || cfg.Input.Source != config.SourceHID {
		return ui.DeviceID{}
	}
	return ui.DeviceID{VendorID: cfg.Input.VendorID, ProductID: cfg.Input.ProductID}
}

// runListDevices handles the list-devices subcommand
func runListDevices(c *cli.Context) error {
	ui.PrintDeviceList(hid.ListDevices(), configuredDevice(c.GlobalString("config")))
	return nil
}

// runSetDevice handles the set-device subcommand
func runSetDevice(c *cli.Context) error {
	if c.Bool("help") {
		ui.PrintSetDeviceUsage()
		return nil
	}

	path := c.GlobalString("config")
	args := c.Args()

	var id ui.DeviceID

	switch len(args) {
	case 2:
		vid, err := parseID(args[0])
		if err != nil {
			return fmt.Errorf("invalid vendor_id %q: %w", args[0], err)
		}
		pid, err := parseID(args[1])
		if err != nil {
			return fmt.Errorf("invalid product_id %q: %w", args[1], err)
		}
		id = ui.DeviceID{VendorID: vid, ProductID: pid}

	case 0:
		devices := hid.ListDevices()
		if len(devices) == 0 {
			return errors.New("no identifiable HID devices found")
		}
		device, err := ui.SelectDevice(devices, configuredDevice(path))
		if err != nil {
			return fmt.Errorf("device selection failed: %w", err)
		}
		if device == nil {
			fmt.Println(ui.Muted("No device selected"))
			return nil
		}
		id = ui.DeviceID{VendorID: device.VendorID, ProductID: device.ProductID}

	default:
		return errors.New("both vendor_id and product_id must be provided, or neither")
	}

	if config.Exists(path) {
		if err := config.UpdateDeviceIDs(path, id.VendorID, id.ProductID); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		ui.PrintDeviceSaved(path, id, false)
		return nil
	}

	if err := config.CreateDefaultConfig(path, id.VendorID, id.ProductID); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	ui.PrintDeviceSaved(path, id, true)
	return nil
}

// parseID parses a vendor or product ID from string (supports hex with 0x prefix or decimal)
func parseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	var val uint64
	var err error

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		val, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		val, err = strconv.ParseUint(s, 10, 16)
	}

	if err != nil {
		return 0, err
	}

	return uint16(val), nil
}
