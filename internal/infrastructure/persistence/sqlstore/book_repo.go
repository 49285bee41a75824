package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)

	// 2. 插入数据库
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return writeError(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查询图书
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []BookModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", uniqueIDs(ids)).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}
	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

// List 查询全部图书(按ID升序)
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	return r.find(dbFrom(ctx, r.db))
}

// ListAvailable 查询全部可借图书(按ID升序)
func (r *bookRepository) ListAvailable(ctx context.Context) ([]*book.Book, error) {
	return r.find(dbFrom(ctx, r.db).Where("available = ?", true))
}

func (r *bookRepository) find(query *gorm.DB) ([]*book.Book, error) {
	var models []BookModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Update 更新图书信息
// 注意:available只能通过MarkBorrowed/MarkAvailable修改,这里不写入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := dbFrom(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":            b.Title,
			"author":           b.Author,
			"isbn":             b.ISBN,
			"genre":            b.Genre,
			"publication_year": b.PublicationYear,
			"description":      b.Description,
		})

	if result.Error != nil {
		return writeError(result.Error, "更新图书失败")
	}
	return nil
}

// Delete 删除图书(物理删除)
// 借阅记录不级联删除,序列化时对应图书快照为null
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// LockByID 悲观锁查询图书
// 教学要点:必须在事务中调用,SELECT ... FOR UPDATE锁定该行直到事务结束
// SQLite不支持行锁,驱动会忽略FOR UPDATE,由MarkBorrowed的条件更新兜底
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// MarkBorrowed 借出(原子条件更新)
// UPDATE books SET available = false WHERE id = ? AND available = true
// 教学要点:即使两个事务都读到available=true,也只有一个UPDATE能命中
func (r *bookRepository) MarkBorrowed(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书状态失败")
	}
	if result.RowsAffected == 0 {
		return r.missOrUnavailable(ctx, id)
	}
	return nil
}

// MarkAvailable 归还后置为可借
func (r *bookRepository) MarkAvailable(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("available", true)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书状态失败")
	}
	if result.RowsAffected == 0 {
		// MySQL在值未变化时RowsAffected也为0,再查一次区分"不存在"
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// missOrUnavailable 条件更新未命中时确定原因
func (r *bookRepository) missOrUnavailable(ctx context.Context, id uint) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	// 图书存在,说明已被借出
	return book.ErrBookNotAvailable
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&BookModel{}).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计图书失败")
	}
	return n, nil
}

// CountByAvailable 按可借状态统计
func (r *bookRepository) CountByAvailable(ctx context.Context, available bool) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&BookModel{}).Where("available = ?", available).Count(&n).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计图书失败")
	}
	return n, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		Available:       b.Available,
		CreatedAt:       b.CreatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Author:          model.Author,
		ISBN:            model.ISBN,
		Genre:           model.Genre,
		PublicationYear: model.PublicationYear,
		Description:     model.Description,
		Available:       model.Available,
		CreatedAt:       model.CreatedAt,
	}
}
