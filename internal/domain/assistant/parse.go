package assistant

import (
	"encoding/json"
	"strings"
)

// stripCodeFence 去掉模型常见的Markdown代码块包裹
// 支持 ```json ... ``` 和 ``` ... ``` 两种形式,其余内容原样保留
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
	default:
		return text
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// decodeModelJSON 把模型输出当作不可信文本解析
// 只做一次"去代码块 + JSON解析",不做任何猜测修复
func decodeModelJSON(text string, v any) error {
	return json.Unmarshal([]byte(stripCodeFence(text)), v)
}

// searchResponse 智能搜索期望的模型输出
type searchResponse struct {
	BookIDs []int64 `json:"book_ids"`
}

// recommendResponse 推荐期望的模型输出
type recommendResponse struct {
	Recommendations []struct {
		BookID int64   `json:"book_id"`
		Reason string  `json:"reason"`
		Rating float64 `json:"rating"`
	} `json:"recommendations"`
}
