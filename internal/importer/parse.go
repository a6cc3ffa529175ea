package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

// defaultLocation is used when the address names no known region
const defaultLocation = "서울"

var (
	employeeCountPattern = regexp.MustCompile(`([\d,]+)\s*명`)
	foundedYearPattern   = regexp.MustCompile(`(\d{4})\s*년`)
	numberPattern        = regexp.MustCompile(`\d+`)
	salaryPattern        = regexp.MustCompile(`([\d,]+)\s*만\s*원`)
	salaryRangePattern   = regexp.MustCompile(`([\d,]+)\s*(?:만\s*원)?\s*~\s*([\d,]+)\s*만\s*원`)
)

// parseLocation returns the region the address starts with
func parseLocation(address string) string {
	address = strings.TrimSpace(address)
	for _, region := range domain.Locations() {
		if strings.HasPrefix(address, region) {
			return region
		}
	}
	return defaultLocation
}

// parseEmployeeCount reads "1,234명 (2024년 기준)" style values
func parseEmployeeCount(s string) *int {
	m := employeeCountPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

// parseFoundedYear reads "2010년 3월 2일 (업력 15년)" style values
func parseFoundedYear(s string) *int {
	m := foundedYearPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &year
}

// parseCareer returns the required years of experience. New-graduate
// postings require none.
func parseCareer(s string) int {
	if strings.Contains(s, "신입") {
		return 0
	}
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	years, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return years
}

func parseJobType(s string) string {
	switch {
	case strings.Contains(s, "정규직"):
		return domain.JobTypeFullTime
	case strings.Contains(s, "계약직"):
		return domain.JobTypeContract
	case strings.Contains(s, "인턴"):
		return domain.JobTypeInternship
	case strings.Contains(s, "아르바이트"), strings.Contains(s, "파트"):
		return domain.JobTypePartTime
	default:
		return domain.JobTypeFullTime
	}
}

// parseSalary reads amounts in units of 10,000 won. A single amount sets
// both bounds; free text such as "회사내규에 따름" yields nil.
func parseSalary(s string) *model.Salary {
	bounds := salaryRangePattern.FindStringSubmatch(s)
	if bounds == nil {
		bounds = salaryPattern.FindStringSubmatch(s)
	}
	if bounds == nil {
		return nil
	}

	amounts := make([]int64, 0, 2)
	for _, raw := range bounds[1:] {
		n, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64)
		if err != nil {
			return nil
		}
		amounts = append(amounts, n*10000)
	}

	return &model.Salary{
		Min:      amounts[0],
		Max:      amounts[len(amounts)-1],
		Currency: "KRW",
	}
}

// parseDate reads "24.12.31 23:59", "2024.12.31" or "24.05.01" in loc.
// Two digit years are in the 2000s.
func parseDate(s string, loc *time.Location) *time.Time {
	datePart, clockPart, _ := strings.Cut(strings.TrimSpace(s), " ")

	fields := strings.Split(strings.TrimSuffix(datePart, "."), ".")
	if len(fields) != 3 {
		return nil
	}
	if len(fields[0]) == 2 {
		fields[0] = "20" + fields[0]
	}

	var ymd [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil
		}
		ymd[i] = n
	}

	var hour, minute, sec int
	if clockPart = strings.TrimSpace(clockPart); clockPart != "" {
		layout := "15:04:05"
		if strings.Count(clockPart, ":") == 1 {
			layout = "15:04"
		}
		c, err := time.Parse(layout, clockPart)
		if err != nil {
			return nil
		}
		hour, minute, sec = c.Clock()
	}

	t := time.Date(ymd[0], time.Month(ymd[1]), ymd[2], hour, minute, sec, 0, loc)
	if t.Month() != time.Month(ymd[1]) || t.Day() != ymd[2] {
		return nil
	}
	return &t
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// jobDescription keeps the summary fields the jobs table has no column for
func jobDescription(rec *JobRecord) *string {
	var b strings.Builder
	line := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			b.WriteString(label + ": " + value + "\n")
		}
	}

	line("회사", rec.Details.Heading)
	line("학력", rec.Details.Education)
	line("직급", rec.Details.Position)
	line("근무형태", rec.Details.EmploymentType)
	line("급여", rec.Details.Salary)
	line("시작일", rec.Details.StartDate)
	line("원문", rec.JobHref)

	return optional(b.String())
}
