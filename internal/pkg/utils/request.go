package utils

import (
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
	"strings"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.URLQueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.URLQueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func BuildFindAllPatientsRequest(r *http.Request) *requests.FindAllPatients {
	pagination := BuildPaginationRequest(r)
	return &requests.FindAllPatients{
		Search:   strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamSearch)),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
}

func BuildFindAllDoctorsRequest(r *http.Request) *requests.FindAllDoctors {
	pagination := BuildPaginationRequest(r)
	return &requests.FindAllDoctors{
		Search:    strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamSearch)),
		Specialty: strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamSpecialty)),
		Status:    strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamStatus)),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}
}

func BuildFindAllAppointmentsRequest(r *http.Request) *requests.FindAllAppointments {
	pagination := BuildPaginationRequest(r)
	return &requests.FindAllAppointments{
		PatientID: strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamPatientID)),
		DoctorID:  strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamDoctorID)),
		Date:      strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamDate)),
		Status:    strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamStatus)),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}
}

func BuildFindAllBillsRequest(r *http.Request) *requests.FindAllBills {
	pagination := BuildPaginationRequest(r)
	return &requests.FindAllBills{
		PatientID: strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamPatientID)),
		Status:    strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamStatus)),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}
}
