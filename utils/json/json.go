package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no json found in text")

func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MarshalString 不转义非 ASCII 字符和 HTML 字符，结果不带末尾换行
func MarshalString(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ExtractJSON 从模型输出中取出 JSON 片段。
// 优先取 ``` 代码块中的内容，否则取第一个完整的 {...} 或 [...]
func ExtractJSON(text string) (string, error) {
	if block, ok := fenced(text); ok {
		text = block
	}
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	if end := matchBracket(text, start); end > 0 {
		return text[start : end+1], nil
	}
	return "", ErrNoJSON
}

// UnmarshalLLM extracts the JSON in text and decodes it into v.
func UnmarshalLLM(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

func fenced(text string) (string, bool) {
	open := strings.Index(text, "```")
	if open < 0 {
		return "", false
	}
	rest := text[open+3:]
	// 跳过语言标记，例如 ```json
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "{[") {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return rest, true
	}
	return rest[:end], true
}

// matchBracket 返回与 start 处括号配对的下标，忽略字符串中的括号
func matchBracket(text string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
