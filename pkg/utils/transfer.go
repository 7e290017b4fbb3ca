package utils

import (
	"strconv"
	"strings"

	"VidHub.com/pkg/constants"
)

// ParseID 解析路径中的 id，非法时返回 false
func ParseID(v string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Transfer 将 JWT payload 中的数值转换为 int64，json 反序列化后数字为 float64
func Transfer(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return -1
}

// Page 统一分页参数，page 从 1 开始
func Page(page, size int) (limit, offset int) {
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	if page > constants.MaxPage {
		page = constants.MaxPage
	}
	return size, (page - 1) * size
}

// NormalizeTag 标签统一小写并去掉首尾空白
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTags 去重、去空
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	res := make([]string, 0, len(names))
	for _, n := range names {
		n = NormalizeTag(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}
	return res
}
