package main

import (
	"github.com/antgroup/ragqa/rag/eval"
	mcpserver "github.com/antgroup/ragqa/server/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the ask and evaluate tools over MCP stdio",
		Long:  "Serve the ask and evaluate tools over MCP stdio. The vector database is reused unless --file_name is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.load()
			if err != nil {
				return err
			}
			client, err := buildLLM(cfg, false)
			if err != nil {
				return err
			}
			embedder, err := buildEmbedder(cfg, o, logger)
			if err != nil {
				return err
			}

			reindex := o.fileName != "" && !o.skipIndex
			storage, err := openStore(cfg, o, reindex, logger)
			if err != nil {
				return err
			}
			defer storage.Close()
			if reindex {
				if _, err = buildIndex(cmd.Context(), cfg, o, embedder, storage, logger); err != nil {
					return err
				}
			}

			r, err := buildRAG(cfg, client, newRetriever(embedder, storage, logger), logger)
			if err != nil {
				return err
			}
			var e mcpserver.Evaluator
			if cfg.Eval.IsEnabled() && !o.noEval {
				var evaluator *eval.Evaluator
				if evaluator, err = buildEvaluator(cfg, client, embedder, logger); err != nil {
					return err
				}
				e = evaluator
			}

			s, err := mcpserver.New(r, e, mcpserver.WithLogger(logger))
			if err != nil {
				return err
			}
			return s.ServeStdio()
		},
	}
}
