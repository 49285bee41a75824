package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// 候选图书上限:控制提示词长度(token成本与延迟)
// 截断规则:按存储查询顺序取前N本,不排序、不抽样
const (
	SearchCandidateLimit    = 30
	RecommendCandidateLimit = 20
	MaxRecommendations      = 3
)

// HealthProbePrompt 健康检查时发送的探测提示词
const HealthProbePrompt = "Hello, respond with 'AI service working'"

// SummaryInput 生成摘要所需字段
type SummaryInput struct {
	Title       string
	Author      string
	Genre       string
	Description string
}

// SummaryInputOf 由图书实体构造摘要输入
func SummaryInputOf(b *book.Book) SummaryInput {
	return SummaryInput{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Description: b.Description,
	}
}

// promptBook 提示词中的图书表示(字段与对外接口的图书JSON一致)
type promptBook struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	PublicationYear *int   `json:"publication_year"`
	Description     string `json:"description"`
	Available       bool   `json:"available"`
	CreatedAt       string `json:"created_at"`
}

// firstN 取前n个元素,不足n个时原样返回
func firstN(books []*book.Book, n int) []*book.Book {
	if len(books) <= n {
		return books
	}
	return books[:n]
}

// encodeBooks 把候选图书序列化为JSON数组
func encodeBooks(books []*book.Book) (string, error) {
	items := make([]promptBook, 0, len(books))
	for _, b := range books {
		items = append(items, promptBook{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			ISBN:            b.ISBN,
			Genre:           b.Genre,
			PublicationYear: b.PublicationYear,
			Description:     b.Description,
			Available:       b.Available,
			CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode candidate books: %w", err)
	}
	return string(data), nil
}

func summaryPrompt(in SummaryInput) string {
	genre := in.Genre
	if genre == "" {
		genre = "Unknown"
	}
	description := in.Description
	if description == "" {
		description = "No description available"
	}

	return fmt.Sprintf(`Create a comprehensive summary for this book:
Title: %s
Author: %s
Genre: %s
Description: %s

Generate a detailed summary that includes:
1. Main themes
2. Target audience
3. Key takeaways
4. Similar books users might enjoy

Keep it engaging and informative.`, in.Title, in.Author, genre, description)
}

func searchPrompt(query string, candidates []*book.Book) (string, error) {
	encoded, err := encodeBooks(firstN(candidates, SearchCandidateLimit))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Search query: %q

Available books: %s

Find books that match the search query. Consider:
- Title matches
- Author matches
- Genre matches
- Description/theme matches
- Similar concepts or synonyms

Return book IDs that match, ranked by relevance (most relevant first).
Return as JSON: {"book_ids": [int, int, ...]}`, query, encoded), nil
}

func recommendPrompt(preferences string, candidates []*book.Book) (string, error) {
	encoded, err := encodeBooks(firstN(candidates, RecommendCandidateLimit))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Based on the user preferences: %s

And these available books: %s

Recommend the top %d books that would best match the user's preferences.
Consider genre, author style, themes, and publication year.

Return response in JSON format:
{
    "recommendations": [
        {
            "book_id": int,
            "reason": "string explaining why this book is recommended",
            "rating": int (1-10)
        }
    ]
}`, preferences, encoded, MaxRecommendations), nil
}
