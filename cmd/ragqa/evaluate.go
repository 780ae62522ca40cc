package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antgroup/ragqa/rag/eval"
	"github.com/antgroup/ragqa/utils/json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v2"
)

func newEvaluateCmd(o *options, in io.Reader, out io.Writer) *cobra.Command {
	var (
		recordPath string
		color      bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a question, answer and contexts record",
		Long:  "Score a record read from --record (JSON or YAML) or from stdin (JSON) and print the report.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := readRecord(recordPath, in)
			if err != nil {
				return err
			}
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
			e, err := buildEvaluator(cfg, client, embedder, logger)
			if err != nil {
				return err
			}

			report, err := e.Evaluate(cmd.Context(), record)
			if err != nil {
				return err
			}
			return writeReport(out, report, color)
		},
	}
	cmd.Flags().StringVar(&recordPath, "record", "", "record file, stdin when empty")
	cmd.Flags().BoolVar(&color, "color", false, "colorize the JSON report")
	return cmd
}

func readRecord(path string, in io.Reader) (eval.Record, error) {
	var record eval.Record
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return record, errors.Wrap(err, "read record")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &record)
	default:
		err = json.Unmarshal(data, &record)
	}
	if err != nil {
		return record, errors.Wrap(err, "decode record")
	}
	return record, nil
}

func writeReport(out io.Writer, report *eval.Report, color bool) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	data = pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "  "})
	if color {
		data = pretty.Color(data, nil)
	}
	_, err = out.Write(data)
	return err
}
