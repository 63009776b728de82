package preference

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wanderlab/voyago/schema"
)

// Fingerprint derives the opaque cache key for one normalized preference set
// on one UTC day. Repeated identical requests within the same day hash to the
// same key; interest order does not matter.
func Fingerprint(prefs schema.Preferences, day time.Time) string {
	interests := append([]string(nil), prefs.Interests...)
	sort.Strings(interests)

	canonical := fmt.Sprintf("v1|%s|%s|%d|%s|%s|%s|%s|%t|%s",
		prefs.Budget,
		prefs.Climate,
		prefs.TripDays,
		strings.ToLower(prefs.Destination),
		strings.ToLower(prefs.Origin),
		strings.ToLower(prefs.Nationality),
		strings.Join(interests, ","),
		prefs.SurpriseMe,
		day.UTC().Format("2006-01-02"),
	)

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
