package qwen

import (
	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/llm/openai"
	"github.com/pkg/errors"
)

const (
	// DashScopeBaseURL 百炼 OpenAI 兼容模式地址
	DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	_defaultModel = "qwen-long"
)

var _ llm.LLM = (*openai.LLM)(nil)

// New 创建通义千问客户端, DashScope 的兼容模式与 OpenAI 协议一致, 直接复用 openai 实现
func New(opts ...Option) (*openai.LLM, error) {
	o := &options{
		model:   _defaultModel,
		baseURL: DashScopeBaseURL,
		stream:  true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.token == "" {
		return nil, errors.New("missing the DashScope API key, set llm.api_key in config or DASHSCOPE_API_KEY in the environment")
	}

	oaOpts := []openai.Option{
		openai.WithToken(o.token),
		openai.WithModel(o.model),
		openai.WithBaseURL(o.baseURL),
	}
	if o.httpClient != nil {
		oaOpts = append(oaOpts, openai.WithHttpClient(o.httpClient))
	}
	if !o.stream {
		oaOpts = append(oaOpts, openai.WithoutStream())
	}
	client, err := openai.New(oaOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "create qwen client")
	}
	return client, nil
}
