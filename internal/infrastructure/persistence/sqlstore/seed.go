package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Seed 空库时写入示例数据(5本经典图书 + 1个示例用户)
// 返回是否实际写入
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&BookModel{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("统计图书失败: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	year := func(y int) *int { return &y }

	books := []BookModel{
		{
			Title: "The Great Gatsby", Author: "F. Scott Fitzgerald",
			ISBN: "978-0-7432-7356-5", Genre: "Classic Fiction", PublicationYear: year(1925),
			Description: "A classic American novel set in the Jazz Age, exploring themes of wealth, love, and the American Dream.",
		},
		{
			Title: "To Kill a Mockingbird", Author: "Harper Lee",
			ISBN: "978-0-06-112008-4", Genre: "Classic Fiction", PublicationYear: year(1960),
			Description: "A powerful story of racial injustice and childhood innocence in the American South.",
		},
		{
			Title: "1984", Author: "George Orwell",
			ISBN: "978-0-452-28423-4", Genre: "Dystopian Fiction", PublicationYear: year(1949),
			Description: "A dystopian social science fiction novel about totalitarianism and surveillance.",
		},
		{
			Title: "Pride and Prejudice", Author: "Jane Austen",
			ISBN: "978-0-14-143951-8", Genre: "Romance", PublicationYear: year(1813),
			Description: "A romantic novel that critiques the British landed gentry at the end of the 18th century.",
		},
		{
			Title: "The Catcher in the Rye", Author: "J.D. Salinger",
			ISBN: "978-0-316-76948-0", Genre: "Coming-of-age Fiction", PublicationYear: year(1951),
			Description: "A controversial novel about teenage rebellion and alienation in post-war America.",
		},
	}
	for i := range books {
		books[i].Available = true
		books[i].CreatedAt = now
	}

	sample := UserModel{Name: "John Doe", Email: "john.doe@example.com", Phone: "123-456-7890", CreatedAt: now}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&books).Error; err != nil {
			return err
		}
		return tx.Create(&sample).Error
	})
	if err != nil {
		return false, fmt.Errorf("写入示例数据失败: %w", err)
	}
	return true, nil
}
