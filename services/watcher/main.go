package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/halvty/groupmeter/internal/store"
	"github.com/halvty/groupmeter/services/watcher/internal/config"
	"github.com/halvty/groupmeter/services/watcher/internal/monitor"
	"github.com/halvty/groupmeter/services/watcher/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("watcher failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	client := &http.Client{Timeout: cfg.RequestTimeout}
	retrievalTS := time.Now().UTC().Truncate(time.Second)

	if chat, err := telegram.GetChat(ctx, client, cfg.APIURL, cfg.BotToken, cfg.TargetChatID); err != nil {
		log.Printf("could not resolve chat metadata for %q: %v", cfg.TargetChatID, err)
	} else {
		log.Printf("monitoring chat %q (type=%s id=%d)", chat.Title, chat.Type, chat.ID)
	}

	count, err := telegram.GetChatMemberCount(ctx, client, cfg.APIURL, cfg.BotToken, cfg.TargetChatID)
	if err != nil {
		return err
	}

	normalized := monitor.NormalizeCount(count)
	if normalized == nil {
		log.Printf("discarding unusable member count %d for %q", count, cfg.TargetChatID)
		return nil
	}
	log.Printf("current member count for %q: %d", cfg.TargetChatID, *normalized)

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	prev, err := st.LatestObservation(ctx)
	if err != nil {
		return err
	}

	if !monitor.ShouldRecord(prev, *normalized, retrievalTS, cfg.MinInterval) {
		log.Printf("no new sample to insert (last=%s, retrieval=%s)",
			prev.TS.Format(time.RFC3339), retrievalTS.Format(time.RFC3339))
		return nil
	}

	if cfg.DryRun {
		log.Printf("dry-run: would insert count=%d ts=%s", *normalized, retrievalTS.Format(time.RFC3339))
		return nil
	}

	if err := st.InsertObservation(ctx, retrievalTS, *normalized); err != nil {
		return err
	}

	log.Printf("inserted member count %d at %s", *normalized, retrievalTS.Format(time.RFC3339))
	return nil
}
