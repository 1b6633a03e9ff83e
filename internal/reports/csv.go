package reports

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/lobbykit/frontdesk/internal/domain"
)

var csvHeader = []string{
	"Name", "Company", "Email", "Mobile", "Person to Meet",
	"Department", "Purpose", "Check In", "Check Out", "Status",
}

// WriteCSV streams the range-filtered records as a CSV report, one row
// per visit in input order. Open visits carry "N/A" in the Check Out
// column.
func WriteCSV(w io.Writer, records []domain.Visitor, rng DateRange) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, v := range InRange(records, rng) {
		checkOut := "N/A"
		if v.CheckOutTime != nil {
			checkOut = v.CheckOutTime.Format(time.RFC3339)
		}
		row := []string{
			v.Name, v.Company, v.Email, v.Mobile, v.PersonToMeet,
			v.Department, v.Purpose,
			v.CheckInTime.Format(time.RFC3339), checkOut,
			string(v.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
