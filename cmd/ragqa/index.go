package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newIndexCmd(o *options, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the vector database from the document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.requireFile(); err != nil {
				return err
			}
			cfg, logger, err := o.load()
			if err != nil {
				return err
			}
			embedder, err := buildEmbedder(cfg, o, logger)
			if err != nil {
				return err
			}
			storage, err := openStore(cfg, o, true, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			wfCtx, err := buildIndex(cmd.Context(), cfg, o, embedder, storage, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "indexed %d documents into %d chunks under %s\n",
				len(wfCtx.Documents), len(wfCtx.TextUnits), o.persistDirectory)
			return nil
		},
	}
}
