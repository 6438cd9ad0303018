package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/DiscordGophers/dr-manual/manual"
	"github.com/DiscordGophers/dr-manual/outline"
	"github.com/DiscordGophers/dr-manual/source"
	"github.com/pkg/errors"
)

// importManual fetches and converts the configured manual.
func importManual(ctx context.Context, client *http.Client, cfg configuration) (*manual.Result, error) {
	if cfg.Manual == "" {
		return nil, errors.New("no manual configured")
	}

	page, err := source.Load(ctx, client, cfg.Manual)
	if err != nil {
		return nil, err
	}

	im := manual.New(log.Default())
	im.LegacyFolders = cfg.LegacyFolders
	im.Base = page.Base
	return im.Import(page.HTML)
}

// reload imports the manual, stores it and swaps in its outline.
func (b *botState) reload(ctx context.Context) (*manual.Result, error) {
	res, err := importManual(ctx, http.DefaultClient, b.cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not import manual")
	}
	if err := b.store.Save(b.cfg.Name, res.Document); err != nil {
		return nil, errors.Wrap(err, "could not save manual")
	}

	m, err := outline.Build(b.cfg.Name, res.Document)
	if err != nil {
		return nil, errors.Wrap(err, "could not index manual")
	}

	b.mu.Lock()
	b.manual = m
	b.items = len(res.Document.Items)
	b.loaded = time.Now()
	b.mu.Unlock()
	return res, nil
}

// restore builds the outline from the stored copy of the manual.
func (b *botState) restore() error {
	doc, err := b.store.Load(b.cfg.Name)
	if err != nil {
		return err
	}
	m, err := outline.Build(b.cfg.Name, doc)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.manual = m
	b.items = len(doc.Items)
	b.loaded = time.Now()
	b.mu.Unlock()
	return nil
}

// refreshManual re-imports the manual every RefreshHours.
func (b *botState) refreshManual() {
	ticker := time.NewTicker(time.Hour * time.Duration(b.cfg.RefreshHours))
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		res, err := b.reload(ctx)
		cancel()
		if err != nil {
			log.Printf("Error refreshing manual: %v", err)
			continue
		}
		log.Printf("Refreshed manual %q: %s", b.cfg.Name, importStats(res))
	}
}

func (b *botState) index() *outline.Manual {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.manual
}
