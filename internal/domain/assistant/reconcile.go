package assistant

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"

	"github.com/xiebiao/library/internal/domain/book"
)

// BookFinder 对账时使用的图书查询接口(book.Repository满足该接口)
type BookFinder interface {
	FindByID(ctx context.Context, id uint) (*book.Book, error)
}

// RecommendedBook 推荐元数据与完整图书合并后的结果
type RecommendedBook struct {
	Recommendation
	Book *book.Book
}

// ReconcileSearch 按模型给出的顺序把ID映射回图书
// 1. 顺序严格等于模型的相关度排序
// 2. 已删除/不存在的ID静默跳过(模型调用期间可能有并发删除)
// 3. 惰性查询,序列只能遍历一次;查询出错时产出该错误并结束
func ReconcileSearch(ctx context.Context, ids []int64, finder BookFinder) iter.Seq2[*book.Book, error] {
	var consumed atomic.Bool
	return func(yield func(*book.Book, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			return
		}
		for _, id := range ids {
			b, err := lookup(ctx, finder, id)
			if err != nil {
				yield(nil, err)
				return
			}
			if b == nil {
				continue
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

// CollectBooks 把对账序列收集为切片,遇到错误立即返回
func CollectBooks(seq iter.Seq2[*book.Book, error]) ([]*book.Book, error) {
	books := make([]*book.Book, 0)
	for b, err := range seq {
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// ReconcileRecommendations 把推荐与完整图书合并
// 找不到的图书直接丢弃,保持模型给出的顺序
func ReconcileRecommendations(ctx context.Context, recs []Recommendation, finder BookFinder) ([]RecommendedBook, error) {
	out := make([]RecommendedBook, 0, len(recs))
	for _, rec := range recs {
		b, err := lookup(ctx, finder, rec.BookID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			continue
		}
		out = append(out, RecommendedBook{Recommendation: rec, Book: b})
	}
	return out, nil
}

// lookup 查询单本图书,不存在时返回(nil, nil)
func lookup(ctx context.Context, finder BookFinder, id int64) (*book.Book, error) {
	if id <= 0 {
		return nil, nil
	}
	b, err := finder.FindByID(ctx, uint(id))
	if errors.Is(err, book.ErrBookNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
