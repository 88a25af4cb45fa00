package domain

// Dashboard is the company home-page summary, assembled from several core
// API lists in one fan-out.
type Dashboard struct {
	Payments              PaymentStatistics `json:"payments"`
	ActiveTeams           int               `json:"activeTeams"`
	TotalTeams            int               `json:"totalTeams"`
	ScheduledAppointments int               `json:"scheduledAppointments"`
	CompletedAppointments int               `json:"completedAppointments"`
	TotalAppointments     int               `json:"totalAppointments"`
	CompletionRate        float64           `json:"completionRate"`
	SuccessRate           float64           `json:"successRate"`
	AverageRating         float64           `json:"averageRating"`
	LowStockMaterials     int               `json:"lowStockMaterials"`
}
