package render

import (
	"fmt"
	"time"
)

// buddhistEraOffset converts a Gregorian year to the Thai Buddhist-era year.
const buddhistEraOffset = 543

var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// ThaiDate formats t the way dates are written on Thai documents:
// "17 ตุลาคม 2569".
func ThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+buddhistEraOffset)
}
