package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrBookNotAvailable 图书已借出
	ErrBookNotAvailable = apperrors.ErrBookNotAvailable

	// ErrAvailabilityConflict 手动修改的可借状态与借阅记录不一致
	ErrAvailabilityConflict = apperrors.New(apperrors.ErrCodeInvalidState,
		"available must match the book's loan state; use borrow/return instead")
)
