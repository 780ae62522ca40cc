package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/antgroup/ragqa/rag/eval"
	"github.com/antgroup/ragqa/rag/query"
	"github.com/antgroup/ragqa/utils/json"
	"github.com/antgroup/ragqa/utils/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

const (
	ToolAsk      = "ask"
	ToolEvaluate = "evaluate"

	failedAnswer = "调用失败, 请重新提问"
)

type Asker interface {
	Ask(ctx context.Context, question string) (*query.Result, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, record eval.Record) (*eval.Report, error)
}

// Server exposes the question answering pipeline as MCP tools.
type Server struct {
	asker     Asker
	evaluator Evaluator
	logger    *zerolog.Logger
	name      string
	version   string
	srv       *server.MCPServer
}

type Option func(*Server)

func WithLogger(l *zerolog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New registers the ask tool, and the evaluate tool when evaluator is not nil.
func New(asker Asker, evaluator Evaluator, opts ...Option) (*Server, error) {
	if asker == nil {
		return nil, errors.New("asker is not set")
	}
	s := &Server{
		asker:     asker,
		evaluator: evaluator,
		logger:    logger.Nop(),
		name:      "ragqa",
		version:   "0.1.0",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = server.NewMCPServer(s.name, s.version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.srv.AddTool(mcp.NewTool(ToolAsk,
		mcp.WithDescription("根据知识库中召回的文档片段回答问题，可选地对回答进行评测"),
		mcp.WithString("question", mcp.Required(), mcp.Description("用户咨询的问题")),
		mcp.WithBoolean("evaluate", mcp.Description("是否对回答评测，默认 true")),
	), s.handleAsk)
	if evaluator != nil {
		s.srv.AddTool(mcp.NewTool(ToolEvaluate,
			mcp.WithDescription("对一条问答记录计算 faithfulness、answer_relevancy 和 context_utilization"),
			mcp.WithString("question", mcp.Required(), mcp.Description("问题")),
			mcp.WithString("answer", mcp.Required(), mcp.Description("回答")),
			mcp.WithArray("contexts", mcp.Required(), mcp.Description("生成回答时使用的文档片段"),
				mcp.Items(map[string]any{"type": "string"})),
		), s.handleEvaluate)
	}
	return s, nil
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.srv
}

// ServeStdio blocks serving requests on stdin and stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info().Str("name", s.name).Msg("serving mcp over stdio")
	return server.ServeStdio(s.srv)
}

type askArgs struct {
	Question string `mapstructure:"question"`
	Evaluate *bool  `mapstructure:"evaluate"`
}

// AskOutput is the text payload of the ask tool.
type AskOutput struct {
	Question string                `json:"question"`
	Answer   string                `json:"answer"`
	Contexts []string              `json:"contexts"`
	Scores   map[string]eval.Score `json:"scores,omitempty"`
	EvalErr  string                `json:"evaluation_error,omitempty"`
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args askArgs
	if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	result, err := s.asker.Ask(ctx, args.Question)
	if err != nil {
		s.logger.Error().Err(err).Msg("ask failed")
		return mcp.NewToolResultErrorFromErr("ask failed", err), nil
	}
	if !result.Answer.OK() {
		return mcp.NewToolResultError(fmt.Sprintf("%s (%s)", failedAnswer, result.Answer.Reason)), nil
	}

	out := AskOutput{
		Question: result.Question,
		Answer:   result.Answer.Answer,
		Contexts: result.Contexts,
	}
	if s.evaluator != nil && (args.Evaluate == nil || *args.Evaluate) {
		report, err := s.evaluator.Evaluate(ctx, result.Record())
		if err != nil {
			s.logger.Warn().Err(err).Msg("evaluation failed")
			out.EvalErr = err.Error()
		} else {
			out.Scores = report.Scores
		}
	}
	return textResult(out)
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var record eval.Record
	if err := mapstructure.Decode(request.GetArguments(), &record); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	report, err := s.evaluator.Evaluate(ctx, record)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("evaluate failed", err), nil
	}
	return textResult(report)
}

func textResult(v any) (*mcp.CallToolResult, error) {
	text, err := json.MarshalString(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
