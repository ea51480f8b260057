package types

// DashboardCountByGroup - количество записей по одному значению колонки.
type DashboardCountByGroup struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountsToMap сворачивает группы в словарь; нулевые значения не добавляются.
func CountsToMap(groups []DashboardCountByGroup) map[string]int {
	result := make(map[string]int, len(groups))
	for _, g := range groups {
		result[g.Key] = g.Count
	}
	return result
}
