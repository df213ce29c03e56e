package responses

type DashboardPatients struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type DashboardDoctors struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	OnLeave  int64 `json:"on_leave"`
	Inactive int64 `json:"inactive"`
}

type DashboardAppointments struct {
	TotalToday int64            `json:"total_today"`
	ByStatus   map[string]int64 `json:"by_status"`
}

type DashboardBilling struct {
	ByStatus     map[string]int64 `json:"by_status"`
	TotalRevenue float64          `json:"total_revenue"`
	Outstanding  float64          `json:"outstanding"`
}

type Dashboard struct {
	Patients     DashboardPatients     `json:"patients"`
	Doctors      DashboardDoctors      `json:"doctors"`
	Appointments DashboardAppointments `json:"appointments"`
	Billing      DashboardBilling      `json:"billing"`
}
