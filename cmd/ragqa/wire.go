package main

import (
	"context"
	"fmt"

	"github.com/antgroup/ragqa/config"
	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/llm/qwen"
	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/rag/embedder/bge"
	embedopenai "github.com/antgroup/ragqa/rag/embedder/openai"
	"github.com/antgroup/ragqa/rag/eval"
	"github.com/antgroup/ragqa/rag/index"
	"github.com/antgroup/ragqa/rag/index/textsplitter"
	"github.com/antgroup/ragqa/rag/loader"
	"github.com/antgroup/ragqa/rag/query"
	"github.com/antgroup/ragqa/rag/retriever"
	"github.com/antgroup/ragqa/rag/storage/db"
	"github.com/antgroup/ragqa/utils/ratelimit"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// knowledgeID is the single knowledge base the CLI maintains.
const knowledgeID = 1

func buildLLM(cfg *config.Config, stream bool) (llm.LLM, error) {
	client, err := qwen.New(
		qwen.WithToken(cfg.LLM.APIKey),
		qwen.WithModel(cfg.LLM.Model),
		qwen.WithBaseURL(cfg.LLM.BaseURL),
		qwen.WithStream(stream),
	)
	if err != nil {
		return nil, err
	}
	if cfg.LLM.Rate <= 0 {
		return client, nil
	}
	return llm.Limit(client, ratelimit.NewTokenBucket(cfg.LLM.Rate, cfg.LLM.Burst)), nil
}

func buildEmbedder(cfg *config.Config, o *options, logger *zerolog.Logger) (rag.Embedder, error) {
	switch cfg.Embedding.Provider {
	case config.ProviderOpenAI:
		model := cfg.Embedding.Model
		if model == "" {
			model = o.modelName
		}
		opts := []embedopenai.Option{
			embedopenai.WithToken(cfg.Embedding.APIKey),
			embedopenai.WithModel(model),
			embedopenai.WithNormalize(cfg.Embedding.Normalize),
			embedopenai.WithLogger(logger),
		}
		if cfg.Embedding.URL != "" {
			opts = append(opts, embedopenai.WithBaseURL(cfg.Embedding.URL))
		}
		if cfg.Embedding.BatchSize > 0 {
			opts = append(opts, embedopenai.WithBatchSize(cfg.Embedding.BatchSize))
		}
		return embedopenai.New(opts...)
	default:
		if err := o.requireModel(); err != nil {
			return nil, err
		}
		opts := []bge.Option{
			bge.WithProviderUrl(cfg.Embedding.URL),
			bge.WithModel(o.modelID()),
			bge.WithDevice(cfg.Embedding.Device),
			bge.WithNormalize(cfg.Embedding.Normalize),
			bge.WithLogger(logger),
		}
		if cfg.Embedding.BatchSize > 0 {
			opts = append(opts, bge.WithBatchSize(cfg.Embedding.BatchSize))
		}
		return bge.New(opts...)
	}
}

// openStore 打开向量库，reset 为 true 时清空目录
func openStore(cfg *config.Config, o *options, reset bool, logger *zerolog.Logger) (*db.Storage, error) {
	return db.Open(o.persistDirectory, reset,
		db.WithDistance(cfg.Store.Distance),
		db.WithKnowledgeID(knowledgeID),
		db.WithLogger(logger),
	)
}

func buildIndex(ctx context.Context, cfg *config.Config, o *options, embedder rag.Embedder,
	storage rag.Storage, logger *zerolog.Logger) (*rag.WorkflowContext, error) {
	if cfg.Loader.OfficeLicense != "" {
		if err := loader.SetOfficeLicense(cfg.Loader.OfficeLicense); err != nil {
			return nil, errors.Wrap(err, "set office license")
		}
	}

	opts := []rag.Option{
		rag.WithChunkSize(cfg.Splitter.ChunkSize),
		rag.WithChunkOverlap(cfg.Splitter.ChunkOverlap),
		rag.WithSplitter(cfg.Splitter.Strategy),
		rag.WithEmbedder(embedder),
		rag.WithStorage(storage),
		rag.WithLogger(logger),
	}
	if len(cfg.Splitter.Separators) > 0 {
		opts = append(opts, rag.WithSeparators(cfg.Splitter.Separators))
	}
	if cfg.Embedding.BatchSize > 0 {
		opts = append(opts, rag.WithBatchSize(cfg.Embedding.BatchSize))
	}
	w, err := index.NewWorkflow(index.DefaultNodes(), opts...)
	if err != nil {
		return nil, err
	}

	wfCtx := rag.NewWorkflowContext()
	wfCtx.Id = knowledgeID
	wfCtx.BasePath = o.docPath()
	if err = w.Run(ctx, wfCtx); err != nil {
		return nil, errors.Wrapf(err, "index %s", wfCtx.BasePath)
	}
	logger.Info().Str("path", wfCtx.BasePath).
		Int("documents", len(wfCtx.Documents)).
		Int("chunks", len(wfCtx.TextUnits)).
		Msg("indexed")
	return wfCtx, nil
}

func buildRAG(cfg *config.Config, l llm.LLM, r rag.Retriever, logger *zerolog.Logger, opts ...query.Option) (*query.RAG, error) {
	options := []query.Option{
		query.WithLLM(l),
		query.WithRetriever(r),
		query.WithTopK(cfg.Retrieval.TopK),
		query.WithMaxAttempts(cfg.LLM.MaxAttempts),
		query.WithLogger(logger),
	}
	var generate []llm.GenerateOption
	if cfg.LLM.Temperature > 0 {
		generate = append(generate, llm.WithTemperature(cfg.LLM.Temperature))
	}
	if cfg.LLM.MaxTokens > 0 {
		generate = append(generate, llm.WithMaxTokens(cfg.LLM.MaxTokens))
	}
	if len(generate) > 0 {
		options = append(options, query.WithGenerateOptions(generate...))
	}
	if cfg.LLM.ContextWindow > 0 {
		counter, err := textsplitter.NewTokenCounter(rag.DefaultTokenEncoding)
		if err != nil {
			logger.Warn().Err(err).Msg("prompt length check disabled")
		} else {
			options = append(options, query.WithContextWindow(counter, cfg.LLM.ContextWindow))
		}
	}
	return query.New(append(options, opts...)...)
}

func buildEvaluator(cfg *config.Config, l llm.LLM, embedder rag.Embedder, logger *zerolog.Logger) (*eval.Evaluator, error) {
	opts := []eval.Option{
		eval.WithStrictness(cfg.Eval.Strictness),
		eval.WithMaxRetries(cfg.Eval.FormatRetries()),
		eval.WithSentenceFilter(&eval.SentenceFilter{Terminators: cfg.Eval.Terminators()}),
		eval.WithLogger(logger),
	}
	if len(cfg.Eval.Metrics) > 0 {
		opts = append(opts, eval.WithMetrics(cfg.Eval.Metrics...))
	}
	e, err := eval.NewEvaluator(l, embedder, opts...)
	if err != nil {
		return nil, fmt.Errorf("create evaluator: %w", err)
	}
	return e, nil
}

func newRetriever(embedder rag.Embedder, storage rag.VectorStorage, logger *zerolog.Logger) rag.Retriever {
	return retriever.NewVector(embedder, storage, retriever.WithLogger(logger))
}
