// Command render enhances a panel page offline and optionally publishes
// PNG snapshots and a preview page to the configured storage.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"painel/internal/charts"
	"painel/internal/config"
	"painel/internal/dom"
	"painel/internal/export"
	"painel/internal/locale"
	"painel/internal/logger"
	"painel/internal/models"
	"painel/internal/page"
	"painel/internal/panel"
	"painel/internal/storage"
)

type options struct {
	dataFile string
	pageFile string
	url      string
	out      string
	theme    string
	publish  bool
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	log := logger.Configure(cfg.LogLevel, cfg.LogFormat).WithComponent("render")

	var opts options
	flag.StringVar(&opts.dataFile, "data", cfg.DataFile, "panel fixture (JSON or YAML)")
	flag.StringVar(&opts.pageFile, "page", "", "saved panel HTML to enhance instead of building one from -data")
	flag.StringVar(&opts.url, "url", "/painel", "address the page is rendered for (tab and filter query)")
	flag.StringVar(&opts.out, "out", "-", "output HTML file, - for stdout")
	flag.StringVar(&opts.theme, "theme", "", "force light or dark")
	flag.BoolVar(&opts.publish, "publish", false, "store PNG snapshots and the preview page")
	flag.Parse()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Fatal("render failed", err)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, log *logger.Logger) error {
	f := locale.New(cfg.Locale)
	builder := page.NewBuilder(cfg.EChartsURL, cfg.DefaultMode)
	u, err := url.Parse(opts.url)
	if err != nil {
		return fmt.Errorf("invalid -url: %w", err)
	}

	var data *models.PanelData
	var doc *dom.HTMLDocument
	if opts.pageFile != "" {
		raw, err := os.ReadFile(opts.pageFile)
		if err != nil {
			return fmt.Errorf("failed to read page: %w", err)
		}
		if doc, err = dom.Parse(bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("failed to parse page: %w", err)
		}
	} else {
		if data, err = models.LoadPanelData(opts.dataFile); err != nil {
			return err
		}
		q := u.Query()
		doc, err = builder.Build(data, page.Request{
			Selection: models.SelectionFromQuery(q),
			MinData:   q.Get("min_data"),
			MaxData:   q.Get("max_data"),
			Turno:     q.Get("turno"),
			Mode:      opts.theme,
		})
		if err != nil {
			return err
		}
	}

	c, err := page.Enhance(doc, page.EnhanceOptions{
		URL:     opts.url,
		Library: charts.NewECharts(log),
		Locale:  f,
		Logger:  log,
		Panel: panel.Options{
			AnimationCeiling: cfg.AnimationCeiling,
			AnimationTotal:   time.Duration(cfg.AnimationMillis) * time.Millisecond,
		},
	})
	if err != nil {
		return err
	}
	log.Info("page enhanced", logger.Fields{"tab": string(c.Tab()), "charts": len(c.Slots())})

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("failed to serialise page: %w", err)
	}
	if opts.out == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(opts.out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}

	if !opts.publish {
		return nil
	}
	if data == nil {
		if data, err = models.LoadPanelData(opts.dataFile); err != nil {
			return fmt.Errorf("publishing needs -data: %w", err)
		}
	}
	return publish(ctx, cfg, builder, data, u.Query(), opts.theme, f, log)
}

func publish(ctx context.Context, cfg *config.Config, builder *page.Builder, data *models.PanelData, q url.Values, override string, f *locale.Formatter, log *logger.Logger) error {
	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bundle, err := data.Bundle(models.SelectionFromQuery(q), log)
	if err != nil {
		return err
	}
	mode := builder.ModeFor(data, override)
	pub := &export.Publisher{
		Store:    store,
		Renderer: export.NewRenderer(mode, f),
		Preview:  export.Preview{Mode: mode, Locale: f},
		Log:      log,
	}
	m, err := pub.Publish(ctx, bundle, page.Palette(data, bundle, mode))
	if err != nil {
		return err
	}
	for _, name := range m.Files {
		fmt.Fprintln(os.Stderr, name)
	}
	return nil
}
