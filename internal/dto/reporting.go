package dto

import "time"

// ReportPeriodParams defines the query parameters shared by period reports.
type ReportPeriodParams struct {
	StartDate time.Time `form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
}

// ReportAsOfParams defines the query parameters for as-of reports.
type ReportAsOfParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}
