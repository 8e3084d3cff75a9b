package pricing

import (
	"fmt"
	"time"
)

// Contract family identifiers, matching the CME product codes.
const (
	FamilySR1 = "SR1"
	FamilySR3 = "SR3"
	FamilyZQ  = "ZQ"
)

// monthCodes is the standard futures month-code alphabet, indexed by month.
var monthCodes = [13]string{"", "F", "G", "H", "J", "K", "M", "N", "Q", "U", "V", "X", "Z"}

// MonthCode returns the futures month letter for a month in 1..12.
func MonthCode(month int) string {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("pricing: month %d out of range", month))
	}
	return monthCodes[month]
}

// ContractCode builds the short contract code, e.g. SR3H5 for the March
// 2025 three-month SOFR future. All families use a single trailing year
// digit.
func ContractCode(family string, year, month int) string {
	return fmt.Sprintf("%s%s%d", family, MonthCode(month), year%10)
}

// monthLabel renders the human-readable contract month, e.g. "Mar 2025".
func monthLabel(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
