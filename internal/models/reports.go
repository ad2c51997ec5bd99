package models

// Standing describes a member's position relative to their home's
// average contribution. It gates transfer eligibility.
type Standing struct {
	UserTotal            float64 `json:"user_total"`
	AverageContribution  float64 `json:"average_contribution"`
	AmountToReachAverage float64 `json:"amount_to_reach_average"`
	IsAboveAverage       bool    `json:"is_above_average"`
	MemberCount          int     `json:"member_count"`
	HomeTotal            float64 `json:"home_total"`
}

// EligibleRecipient is a same-home member who may receive a transfer.
type EligibleRecipient struct {
	Username          string  `json:"username"`
	FullName          string  `json:"full_name"`
	TotalContribution float64 `json:"total_contribution"`
	AboveAverageBy    float64 `json:"above_average_by"`
}

// UserTotal is a per-user aggregation row.
type UserTotal struct {
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}

// ProductTotal is a per-product aggregation row. Transfer adjustments
// are excluded from product aggregations.
type ProductTotal struct {
	Product     string  `json:"product_name"`
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}

// MonthTotal is a per-(year, month) aggregation row.
type MonthTotal struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}

// Analytics is the full read-side aggregation over a set of ledger
// entries, recomputed on every request.
type Analytics struct {
	TotalContributions int            `json:"total_contributions"`
	TotalAmount        float64        `json:"total_amount"`
	ByUser             []UserTotal    `json:"contributions_by_user"`
	ByProduct          []ProductTotal `json:"contributions_by_product"`
	Monthly            []MonthTotal   `json:"monthly_contributions"`
}

// MonthlySummary aggregates one calendar month.
type MonthlySummary struct {
	Year        int            `json:"year"`
	Month       int            `json:"month"`
	TotalAmount float64        `json:"total_amount"`
	TotalCount  int            `json:"total_count"`
	ByUser      []UserTotal    `json:"contributions_by_user"`
	ByProduct   []ProductTotal `json:"contributions_by_product"`
}

// UserStatistics summarizes one user's ledger activity.
type UserStatistics struct {
	TotalContributions int           `json:"total_contributions"`
	TotalAmount        float64       `json:"total_amount"`
	Recent             []LedgerEntry `json:"recent_contributions"`
}
