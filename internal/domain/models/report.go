package models

// DailyTotal sums one day's milk collection.
type DailyTotal struct {
	Date        string  `json:"date"`
	TotalQty    float64 `json:"total_qty"`
	TotalAmount float64 `json:"total_amount"`
}

// MonthlyTotal sums one calendar month's milk collection.
type MonthlyTotal struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalQty    float64 `json:"total_qty"`
	TotalAmount float64 `json:"total_amount"`
}

// ShiftGroup aggregates the entries of one shift within a single day:
// quantity and amount are summed, the quality metrics and rate averaged.
type ShiftGroup struct {
	Shift   string  `json:"shift"`
	Qty     float64 `json:"qty"`
	Amount  float64 `json:"amount"`
	AvgFat  float64 `json:"avg_fat"`
	AvgSNF  float64 `json:"avg_snf"`
	AvgCLR  float64 `json:"avg_clr"`
	AvgRate float64 `json:"avg_rate"`
}

// DateGroup aggregates the entries of one calendar day.
type DateGroup struct {
	Date    string  `json:"date"`
	Qty     float64 `json:"qty"`
	Amount  float64 `json:"amount"`
	AvgFat  float64 `json:"avg_fat"`
	AvgSNF  float64 `json:"avg_snf"`
	AvgCLR  float64 `json:"avg_clr"`
	AvgRate float64 `json:"avg_rate"`
}

// BulkDeleteRequest carries the ids targeted by a bulk delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}
