// Package loan 借阅/归还用例
//
// 借阅状态机(每本书):
//
//	Available --Borrow--> OnLoan --Return--> Available
//
// 一次请求一个事务;事件和指标在事务提交之后处理,
// 失败的事务不会发出任何事件。
package loan

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
)

// RecordDetail 借阅记录及其引用的图书、借阅者快照
// 图书被删除后Book为nil(记录不随图书级联删除)
type RecordDetail struct {
	Record *loan.Record
	Book   *book.Book
	User   *user.User
}

func utcNow() time.Time {
	return time.Now().UTC()
}
