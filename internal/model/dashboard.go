package model

// MonthlyPoint is one period of the charges-vs-revenues chart. Month is
// formatted "YYYY-MM".
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Revenues float64 `json:"revenues"`
	Charges  float64 `json:"charges"`
	Net      float64 `json:"net"`
}

// DashboardStats is the home-screen aggregate. TotalBalance sums the
// balances of clients currently marked paid; ChartData covers the last
// twelve periods that have any charge or invoice data, oldest first.
type DashboardStats struct {
	TotalResidences int64          `json:"totalResidences"`
	TotalClients    int64          `json:"totalClients"`
	TotalCharges    float64        `json:"totalCharges"`
	TotalBalance    float64        `json:"totalBalance"`
	MonthlyRevenues float64        `json:"monthlyRevenues"`
	MonthlyCharges  float64        `json:"monthlyCharges"`
	NetRevenue      float64        `json:"netRevenue"`
	ChartData       []MonthlyPoint `json:"chartData"`
}
