package domain

// TopItem — значение поля и число его вхождений.
type TopItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DashboardStats считается по всему набору заново, кэшируется только результат целиком
type DashboardStats struct {
	TopSourceIPs        []TopItem  `json:"topSourceIPs"`
	TopDestinationIPs   []TopItem  `json:"topDestinationIPs"`
	TopDestinationPorts []TopItem  `json:"topDestinationPorts"`
	BlockedTotal        int        `json:"blockedTotal"`
	EventsByDay         []DayCount `json:"eventsByDay"`
	Total               int        `json:"total"`
}
