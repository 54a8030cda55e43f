package snippet

import (
	"fmt"
	"time"
)

// titleLayout renders e.g. "Nov 14, 2023, 10:13 PM".
const titleLayout = "Jan 2, 2006, 03:04 PM"

// GenerateSnippetTitle builds "<Label> - <date>" with the timestamp shown in loc.
// A nil loc means time.Local.
func GenerateSnippetTitle(t Type, createdAt int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	date := time.UnixMilli(createdAt).In(loc).Format(titleLayout)
	return fmt.Sprintf("%s - %s", t.Label(), date)
}
