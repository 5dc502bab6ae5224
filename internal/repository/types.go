package repository

import "gorm.io/gorm"

// ReferenceListFilter 参考数据列表过滤条件，PageSize<=0 表示不分页
type ReferenceListFilter struct {
	Page     int
	PageSize int
	Search   string
}

func (f ReferenceListFilter) offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// paginate 按过滤条件追加 LIMIT/OFFSET
func (f ReferenceListFilter) paginate(query *gorm.DB) *gorm.DB {
	if query == nil || f.PageSize <= 0 {
		return query
	}
	return query.Limit(f.PageSize).Offset(f.offset())
}
