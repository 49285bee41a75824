package assistant

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Recommendation 模型给出的一条推荐
type Recommendation struct {
	BookID int64
	Reason string
	Rating int // 1-10
}

// Adapter AI增强适配器
// 三个操作流程一致:构造提示词 → 调用模型 → 解析结构化结果 → 失败兜底
// 兜底策略各不相同:
//   - Summarize:   失败返回可直接展示的错误文本
//   - SmartSearch: 失败返回空ID列表,搜索退化为"没有AI匹配结果"
//   - Recommend:   失败返回AdapterFailure错误,由调用方返回500
type Adapter struct {
	gen    Generator
	logger *zap.Logger
}

// NewAdapter 创建适配器
func NewAdapter(gen Generator, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{gen: gen, logger: logger}
}

// Summarize 生成图书摘要,返回模型原始文本;失败时返回SummaryFallback文本
func (a *Adapter) Summarize(ctx context.Context, in SummaryInput) string {
	text, err := a.TrySummarize(ctx, in)
	if err != nil {
		return SummaryFallback(err)
	}
	return text
}

// TrySummarize 与Summarize相同,但把失败作为错误返回(调用方据此决定是否缓存)
func (a *Adapter) TrySummarize(ctx context.Context, in SummaryInput) (string, error) {
	text, err := a.gen.Generate(ctx, summaryPrompt(in))
	if err != nil {
		a.logger.Warn("生成图书摘要失败", zap.String("title", in.Title), zap.Error(err))
		return "", err
	}
	return text, nil
}

// SummaryFallback 摘要失败时展示给用户的文本
func SummaryFallback(err error) string {
	return fmt.Sprintf("Error generating summary: %s", err)
}

// SmartSearch 智能搜索,返回按相关度排序的图书ID
// 只把前30本候选图书交给模型,超出部分静默截断
func (a *Adapter) SmartSearch(ctx context.Context, query string, candidates []*book.Book) []int64 {
	prompt, err := searchPrompt(query, candidates)
	if err != nil {
		a.logger.Warn("构造搜索提示词失败", zap.Error(err))
		return []int64{}
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("智能搜索调用失败,返回空结果", zap.String("query", query), zap.Error(err))
		return []int64{}
	}

	var resp searchResponse
	if err := decodeModelJSON(text, &resp); err != nil {
		a.logger.Warn("智能搜索结果解析失败,返回空结果", zap.String("query", query), zap.Error(err))
		return []int64{}
	}
	if resp.BookIDs == nil {
		return []int64{}
	}
	return resp.BookIDs
}

// Recommend 根据偏好推荐图书
// 1. 没有候选图书时直接返回空列表,不调用模型
// 2. 只把前20本候选图书交给模型
// 3. 结果最多3条,评分收敛到1-10
func (a *Adapter) Recommend(ctx context.Context, preferences string, candidates []*book.Book) ([]Recommendation, error) {
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	prompt, err := recommendPrompt(preferences, candidates)
	if err != nil {
		return nil, apperrors.AdapterFailure(fmt.Sprintf("AI service error: %s", err), err)
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, apperrors.AdapterFailure(fmt.Sprintf("AI service error: %s", err), err)
	}

	var resp recommendResponse
	if err := decodeModelJSON(text, &resp); err != nil {
		return nil, apperrors.AdapterFailure(fmt.Sprintf("Failed to parse AI response: %s", err), err)
	}

	recs := make([]Recommendation, 0, min(len(resp.Recommendations), MaxRecommendations))
	for _, r := range resp.Recommendations {
		if len(recs) == MaxRecommendations {
			break
		}
		recs = append(recs, Recommendation{
			BookID: r.BookID,
			Reason: r.Reason,
			Rating: clampRating(r.Rating),
		})
	}
	return recs, nil
}

// Probe 健康检查探测:返回模型回复中是否包含"working"
func (a *Adapter) Probe(ctx context.Context) (bool, error) {
	text, err := a.gen.Generate(ctx, HealthProbePrompt)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(text), "working"), nil
}

func clampRating(r float64) int {
	v := int(math.Round(r))
	return max(1, min(10, v))
}
