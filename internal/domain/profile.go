package domain

import "time"

// JobSeekerProfile holds candidate details. ResumeURL is copied onto applications at apply time.
type JobSeekerProfile struct {
	UserID     string
	Phone      string
	Location   string
	ResumeURL  string
	Skills     []string
	Education  []string
	Experience []string
	UpdatedAt  time.Time
}

// EmployerProfile holds company details.
type EmployerProfile struct {
	UserID             string
	CompanyName        string
	CompanyWebsite     string
	CompanyDescription string
	Location           string
	UpdatedAt          time.Time
}
