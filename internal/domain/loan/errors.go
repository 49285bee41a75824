package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrRecordNotFound 借阅记录不存在
	ErrRecordNotFound = apperrors.ErrRecordNotFound

	// ErrAlreadyReturned 重复归还
	ErrAlreadyReturned = apperrors.ErrAlreadyReturned
)
