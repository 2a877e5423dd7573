package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	chatbotx "github.com/tanpawarit/catalog-chatbot/agent/agents/chatbot"
	nlpx "github.com/tanpawarit/catalog-chatbot/agent/agents/nlp"
	cachex "github.com/tanpawarit/catalog-chatbot/agent/cache"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	llmx "github.com/tanpawarit/catalog-chatbot/agent/llm"
	configx "github.com/tanpawarit/catalog-chatbot/pkg/config"
	databasex "github.com/tanpawarit/catalog-chatbot/pkg/database"
)

func openDatabase(ctx context.Context) (*bun.DB, error) {
	dbCfg, err := configx.New[databasex.Config]("DATABASE")
	if err != nil {
		return nil, err
	}

	db, err := databasex.Open(*dbCfg)
	if err != nil {
		return nil, err
	}
	if err := databasex.Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// services holds the process-wide collaborators shared by serve and ask.
type services struct {
	db      *bun.DB
	store   *catalogx.Store
	cache   cachex.SummaryCache
	chatbot *chatbotx.Chatbot
}

func newServices(ctx context.Context) (*services, error) {
	db, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	rt := &services{db: db}

	rt.store, err = catalogx.NewStore(db)
	if err != nil {
		rt.Close()
		return nil, err
	}

	cacheCfg, err := configx.New[cachex.Config]("SUMMARY_CACHE")
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.cache, err = cachex.New(ctx, *cacheCfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("summary cache: %w", err)
	}
	if rt.cache != nil {
		log.Info().Str("backend", cacheCfg.Backend).Msg("summary cache enabled")
	}

	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		rt.Close()
		return nil, err
	}
	registry, err := nlpx.NewRegistry(ctx, *llmCfg, nlpx.WithSummaryCache(rt.cache))
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.chatbot, err = chatbotx.New(rt.store, registry)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *services) Close() {
	if rt.cache != nil {
		if err := rt.cache.Close(); err != nil {
			log.Warn().Err(err).Msg("close summary cache")
		}
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}
}
