package importer

// JobRecord is one entry of the crawled jobs.json array
type JobRecord struct {
	CompanyName string      `json:"company_name"`
	JobTitle    string      `json:"job_title"`
	JobHref     string      `json:"job_href"`
	TechStack   []string    `json:"tech_stack"`
	Details     JobDetails  `json:"details"`
	CompanyInfo CompanyInfo `json:"company_info"`
}

// JobDetails is the summary box of a posting page
type JobDetails struct {
	Heading        string `json:"회사"`
	Career         string `json:"경력"`
	Salary         string `json:"급여"`
	Education      string `json:"학력"`
	Position       string `json:"직급"`
	EmploymentType string `json:"근무형태"`
	Region         string `json:"근무지역"`
	StartDate      string `json:"시작일"`
	Deadline       string `json:"마감일"`
}

// CompanyInfo is the company box of a posting page. Keys are the labels the
// site prints, so any of them may be missing.
type CompanyInfo struct {
	Industry  string `json:"업종"`
	Form      string `json:"기업형태"`
	Address   string `json:"기업주소"`
	Employees string `json:"사원수"`
	Founded   string `json:"설립일"`
	Homepage  string `json:"홈페이지"`
}

// ReviewRecord is one line of the crawled company review JSONL file
type ReviewRecord struct {
	Field       string `json:"분야"`
	Hiring      string `json:"채용여부"`
	Title       string `json:"타이틀"`
	CompanyName string `json:"회사이름"`
	Department  string `json:"부서"`
	Writer      string `json:"작성자"`
	WrittenAt   string `json:"작성일자"`
}
