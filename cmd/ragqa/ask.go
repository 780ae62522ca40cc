package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/rag/eval"
	"github.com/antgroup/ragqa/rag/query"
	"github.com/rs/zerolog"
)

const (
	questionPrompt = "请输入您想要咨询的问题:"
	failedResponse = "调用失败, 请重新提问"
)

type evaluator interface {
	Evaluate(ctx context.Context, record eval.Record) (*eval.Report, error)
}

func runAsk(ctx context.Context, o *options, in io.Reader, out io.Writer) error {
	if err := o.requireFile(); err != nil {
		return err
	}
	cfg, logger, err := o.load()
	if err != nil {
		return err
	}
	client, err := buildLLM(cfg, o.stream)
	if err != nil {
		return err
	}
	embedder, err := buildEmbedder(cfg, o, logger)
	if err != nil {
		return err
	}

	storage, err := openStore(cfg, o, !o.skipIndex, logger)
	if err != nil {
		return err
	}
	defer storage.Close()
	if !o.skipIndex {
		if _, err = buildIndex(ctx, cfg, o, embedder, storage, logger); err != nil {
			return err
		}
	}

	s := &session{in: bufio.NewReader(in), out: out, stream: o.stream, logger: logger}
	r, err := buildRAG(cfg, client, newRetriever(embedder, storage, logger), logger, s.ragOptions()...)
	if err != nil {
		return err
	}
	s.asker = r
	if cfg.Eval.IsEnabled() && !o.noEval {
		if s.evaluator, err = buildEvaluator(cfg, client, embedder, logger); err != nil {
			return err
		}
	}
	return s.run(ctx)
}

type asker interface {
	Ask(ctx context.Context, question string) (*query.Result, error)
}

// session is one interactive question: read, answer, evaluate.
type session struct {
	in        *bufio.Reader
	out       io.Writer
	stream    bool
	asker     asker
	evaluator evaluator
	logger    *zerolog.Logger
}

// ragOptions prints the prompt before the model is called so a streamed
// answer follows it.
func (s *session) ragOptions() []query.Option {
	opts := []query.Option{
		query.WithOnPrompt(func(prompt string) {
			fmt.Fprintf(s.out, "Prompt:  %s \n\n", prompt)
			if s.stream {
				fmt.Fprint(s.out, "response:  ")
			}
		}),
	}
	if s.stream {
		// 重试前结束失败请求的半行输出，重新开始一行回答
		opts = append(opts, query.WithOnRetry(func(attempt int, _ query.AnswerResult) {
			fmt.Fprintf(s.out, "\n(retry %d)\nresponse:  ", attempt)
		}))
		opts = append(opts, query.WithGenerateOptions(llm.WithStreamingFunc(
			func(_ context.Context, chunk []byte) error {
				_, err := s.out.Write(chunk)
				return err
			})))
	}
	return opts
}

func (s *session) readQuestion() (string, error) {
	fmt.Fprintln(s.out, questionPrompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *session) run(ctx context.Context) error {
	question, err := s.readQuestion()
	if err != nil {
		return err
	}
	result, err := s.asker.Ask(ctx, question)
	if err != nil {
		return err
	}

	if !result.Answer.OK() {
		if s.stream {
			fmt.Fprintln(s.out)
		}
		fmt.Fprintf(s.out, "response: %s\n\n", failedResponse)
		return nil
	}
	if s.stream {
		fmt.Fprint(s.out, " \n\n")
	} else {
		fmt.Fprintf(s.out, "response:  %s \n\n", result.Answer.Answer)
	}

	if s.evaluator == nil {
		return nil
	}
	report, err := s.evaluator.Evaluate(ctx, result.Record())
	if errors.Is(err, eval.ErrNoContexts) {
		s.logger.Warn().Msg("nothing was retrieved, evaluation skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	fmt.Fprintln(s.out, report.String())
	return nil
}
