package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅记录仓储实现
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅记录仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, rec *loan.Record) error {
	model := &BorrowRecordModel{
		BookID:     rec.BookID,
		UserID:     rec.UserID,
		BorrowDate: rec.BorrowDate,
		ReturnDate: rec.ReturnDate,
		Returned:   rec.Returned,
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return writeError(err, "创建借阅记录失败")
	}

	rec.ID = model.ID
	return nil
}

// FindByID 根据ID查询
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Record, error) {
	return r.first(dbFrom(ctx, r.db), id, "查询借阅记录失败")
}

// LockByID 悲观锁查询借阅记录
func (r *loanRepository) LockByID(ctx context.Context, id uint) (*loan.Record, error) {
	return r.first(dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id, "锁定借阅记录失败")
}

func (r *loanRepository) first(query *gorm.DB, id uint, message string) (*loan.Record, error) {
	var model BorrowRecordModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, message)
	}
	return toRecordEntity(&model), nil
}

// MarkReturned 归还(原子条件更新)
// UPDATE borrow_records SET returned = true, return_date = ? WHERE id = ? AND returned = false
// 教学要点:条件中带上returned=false,并发重复归还只有一个能命中,
// 未命中的一方不会覆盖已写入的return_date
func (r *loanRepository) MarkReturned(ctx context.Context, id uint, returnDate time.Time) error {
	db := dbFrom(ctx, r.db)
	result := db.Model(&BorrowRecordModel{}).
		Where("id = ? AND returned = ?", id, false).
		Updates(map[string]interface{}{
			"returned":    true,
			"return_date": returnDate,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return loan.ErrAlreadyReturned
	}
	return nil
}

// List 查询全部借阅记录
func (r *loanRepository) List(ctx context.Context) ([]*loan.Record, error) {
	return r.find(dbFrom(ctx, r.db))
}

// ListOpen 查询全部未归还记录
func (r *loanRepository) ListOpen(ctx context.Context) ([]*loan.Record, error) {
	return r.find(dbFrom(ctx, r.db).Where("returned = ?", false))
}

func (r *loanRepository) find(query *gorm.DB) ([]*loan.Record, error) {
	var models []BorrowRecordModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	records := make([]*loan.Record, len(models))
	for i := range models {
		records[i] = toRecordEntity(&models[i])
	}
	return records, nil
}

// CountOpen 未归还记录数
func (r *loanRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&BorrowRecordModel{}).Where("returned = ?", false).Count(&n).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计借阅记录失败")
	}
	return n, nil
}

// toRecordEntity GORM模型 → 领域实体
func toRecordEntity(model *BorrowRecordModel) *loan.Record {
	return &loan.Record{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		BorrowDate: model.BorrowDate,
		ReturnDate: model.ReturnDate,
		Returned:   model.Returned,
	}
}
