// Command fitly is the terminal front end of the Fitly wardrobe client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/raushankrgupta/fitly-wardrobe/config"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("load config: %v", err)
	}
	utils.InitLogger(config.AppConfig.LogLevel)
	defer utils.Logger.Sync()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config.AppConfig, os.Stdout)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer a.Close()

	if err := a.Run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fitly <command> [flags] [args]

commands:
  login, signup, logout, whoami
  feed, like, save, comments, comment, post
  wardrobe list|upload|delete|tags|import
  recommend
  calendar list|show|save|delete
  chat
  studio list|generate|save|export
  profile show|rename|image`)
}
