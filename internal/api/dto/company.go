package dto

type CompanyRequest struct {
	Name          *string `json:"name"`
	Industry      *string `json:"industry"`
	Size          *string `json:"size"`
	Location      *string `json:"location"`
	EmployeeCount *int    `json:"employeeCount" binding:"omitempty,min=0"`
	FoundedYear   *int    `json:"foundedYear" binding:"omitempty,min=1800"`
	CompanyURL    *string `json:"companyUrl" binding:"omitempty,url"`
}

type ListCompaniesQuery struct {
	Keyword  string `form:"keyword"`
	Industry string `form:"industry"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}
