package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"SketchBoard/internal/board"
	"SketchBoard/internal/config"
	"SketchBoard/internal/export"
	"SketchBoard/internal/net"
	"SketchBoard/internal/persist"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
	"SketchBoard/internal/ui"
)

// publishInterval bounds how often the host pushes its board to viewers.
const publishInterval = 100 * time.Millisecond

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  sketchboard [host] [-config file] [-open board.json]
  sketchboard view [-config file] sketchboard://host:port
  sketchboard browse [-timeout 3s]
  sketchboard export [-config file] -o out.(svg|pdf|png) board.json
`)
}

func main() {
	args := os.Args[1:]
	mode := "host"
	if len(args) > 0 {
		switch {
		case strings.HasPrefix(args[0], net.LinkScheme+"://"):
			mode = "view"
		case !strings.HasPrefix(args[0], "-"):
			mode, args = args[0], args[1:]
		}
	}

	var err error
	switch mode {
	case "host":
		err = runHost(args)
	case "view":
		err = runClient(args)
	case "browse":
		err = runBrowse(args)
	case "export":
		err = runExport(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", mode, err)
	}
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	log.Printf("[CONFIG] theme=%s fps=%d history=%d share=%v", cfg.Theme, cfg.FPS, cfg.HistoryLimit, cfg.Share.Enabled)
	return cfg, nil
}

func runHost(args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath, "YAML config file")
	open := fs.String("open", "", "board file to open")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log.Println("Starting as HOST")

	store := state.NewStore(state.WithHistoryLimit(cfg.HistoryLimit), state.WithStyle(cfg.Style))
	ctrl := board.New(store, render.NewRenderer(render.ThemeNamed(cfg.Theme), cfg.Grid))
	if *open != "" {
		doc, err := persist.Load(*open)
		if err != nil {
			return err
		}
		ctrl.Open(doc)
		store.ResetHistory()
	}

	opts := ui.Options{
		Title:      "SketchBoard",
		Controller: ctrl,
		FPS:        cfg.FPS,
		Export:     export.Exporter{Theme: render.ThemeNamed(cfg.Theme), Scale: cfg.ExportScale},
	}
	if cfg.Share.Enabled {
		ip, err := net.GetOutgoingIP()
		if err != nil {
			log.Printf("[SHARE] %v; share link uses localhost", err)
			ip = "127.0.0.1"
		}
		opts.ShareLink = net.Link(ip, cfg.Share.Port)
		opts.OnStart = func(ctx context.Context, b *ui.BoardWidget) {
			startSharing(ctx, cfg.Share, store, b)
		}
	}
	ui.RunApp(opts)
	return nil
}

// startSharing serves the board to viewers until ctx is done.
func startSharing(ctx context.Context, share config.Share, store *state.Store, b *ui.BoardWidget) {
	hub := net.NewHub()
	go hub.Follow(ctx, store, publishInterval)
	go func() {
		if err := hub.Serve(ctx, share.Port); err != nil {
			log.Printf("[SHARE] %v", err)
			b.SetStatus(fmt.Sprintf("Sharing failed: %v", err))
		}
	}()
	if !share.Advertise {
		return
	}
	server, err := net.Advertise(share.Name, share.Port)
	if err != nil {
		log.Printf("[MDNS] %v", err)
		return
	}
	log.Printf("[MDNS] advertising %q on port %d", share.Name, share.Port)
	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()
}

func runClient(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath, "YAML config file")
	fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	addr, err := net.ParseLink(fs.Arg(0))
	if err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log.Println("Starting as CLIENT")

	ctrl := board.NewViewer(state.NewStore(), render.NewRenderer(render.ThemeNamed(cfg.Theme), cfg.Grid))
	ui.RunApp(ui.Options{
		Title:      "SketchBoard - " + addr,
		Controller: ctrl,
		FPS:        cfg.FPS,
		OnStart: func(ctx context.Context, b *ui.BoardWidget) {
			go connectToHost(ctx, addr, b)
		},
	})
	return nil
}

func connectToHost(ctx context.Context, addr string, b *ui.BoardWidget) {
	b.SetStatus("Connecting to " + addr)
	received := 0
	err := net.Watch(ctx, addr, func(doc persist.Document) {
		b.Controller().Present(doc.Elements)
		if received == 0 {
			b.SetStatus("Connected to " + addr)
		}
		received++
	})
	if err != nil {
		log.Printf("[NET] %v", err)
		b.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
	}
}

func runBrowse(args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	timeout := fs.Duration("timeout", 3*time.Second, "how long to listen")
	fs.Parse(args)

	found := 0
	err := net.Browse(context.Background(), *timeout, func(s net.Service) {
		found++
		fmt.Printf("%s\t%s://%s\n", s.Name, net.LinkScheme, s.Addr)
	})
	if err != nil {
		return err
	}
	if found == 0 {
		fmt.Fprintln(os.Stderr, "no boards found")
	}
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath, "YAML config file")
	out := fs.String("o", "", "output file; the extension picks the format")
	fs.Parse(args)
	if fs.NArg() != 1 || *out == "" {
		usage()
		os.Exit(2)
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	doc, err := persist.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	format, err := export.FormatOf(*out)
	if err != nil {
		return err
	}
	x := export.Exporter{Theme: render.ThemeNamed(cfg.Theme), Scale: cfg.ExportScale}
	err = export.WriteFile(*out, func(w io.Writer) error {
		return x.Write(w, format, doc.Elements)
	})
	if err != nil {
		return err
	}
	log.Printf("[PERSIST] exported %d elements to %s", len(doc.Elements), *out)
	return nil
}
