package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/antgroup/ragqa/config"
	"github.com/antgroup/ragqa/utils/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	filePath         string
	fileName         string
	modelPath        string
	modelName        string
	persistDirectory string
	configPath       string
	logLevel         string
	stream           bool
	skipIndex        bool
	noEval           bool
}

// docPath is the file, directory or wildcard pattern to index.
func (o *options) docPath() string {
	return filepath.Join(o.filePath, o.fileName)
}

// modelID identifies the embedding model the way the embedding service loads it.
func (o *options) modelID() string {
	return filepath.Join(o.modelPath, o.modelName)
}

func (o *options) requireFile() error {
	if o.fileName == "" {
		return errors.New(`required flag "file_name" not set`)
	}
	return nil
}

func (o *options) requireModel() error {
	if o.modelName == "" {
		return errors.New(`required flag "model_name" not set`)
	}
	return nil
}

// load reads the configuration and builds the logger. Flags win over the file.
func (o *options) load() (*config.Config, *zerolog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	l := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	return cfg, &l, nil
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "ragqa",
		Short:         "Answer questions from a document and score the answers",
		Long:          "ragqa indexes a document into a local vector store, answers a question from the retrieved chunks and evaluates the answer with faithfulness, answer_relevancy and context_utilization.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsk(cmd.Context(), o, in, out)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.filePath, "file_path", "doc", "The path to the doc file directory")
	flags.StringVar(&o.fileName, "file_name", "", "The name to the doc file, wildcards such as '*.pdf' are allowed")
	flags.StringVar(&o.modelPath, "model_path", "embedding_model", "The path to the model directory")
	flags.StringVar(&o.modelName, "model_name", "", "The name to the model")
	flags.StringVar(&o.persistDirectory, "persist_directory", "chroma", "The directory to persist the vector database")
	flags.StringVar(&o.configPath, "config", "", "YAML config file")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&o.stream, "stream", false, "print the answer while it is generated")
	flags.BoolVar(&o.skipIndex, "skip_index", false, "reuse the vector database instead of rebuilding it")
	flags.BoolVar(&o.noEval, "no_eval", false, "skip the evaluation of the answer")

	root.AddCommand(
		newAskCmd(o, in, out),
		newIndexCmd(o, out),
		newEvaluateCmd(o, in, out),
		newMCPCmd(o),
	)
	return root
}

func newAskCmd(o *options, in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ask",
		Short: "Index the document, read a question from stdin and answer it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsk(cmd.Context(), o, in, out)
		},
	}
}
