package overlay

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Layouts tried, in order, when parsing a creation timestamp.
const (
	creationLayout     = "Mon 02 Jan 2006 15:04:05 -0700"
	creationDateLayout = "2/1/2006"
)

// Tags are the embedded metadata strings read from a photo. An empty
// field means the tag was not present.
type Tags struct {
	DateTimeOriginal string
	CreationTime     string
	Title            string
}

// Metadata is what the overlay knows about a photo. Zero values mean
// absent: a zero Created, an empty Location or Title.
type Metadata struct {
	Created  time.Time
	Location string
	Title    string
}

// HasCreated reports whether a creation timestamp was resolved.
func (m Metadata) HasCreated() bool { return !m.Created.IsZero() }

// Resolve derives a photo's metadata from its tags and path. It never
// fails; unusable inputs leave the corresponding field absent.
func Resolve(imagePath string, tags Tags) Metadata {
	var meta Metadata

	raw := strings.TrimSpace(tags.DateTimeOriginal)
	if raw == "" {
		raw = strings.TrimSpace(tags.CreationTime)
	}
	if created, ok := ParseCreationTime(raw); ok {
		meta.Created = created
	}

	meta.Location = LocationLabel(imagePath)
	meta.Title = strings.TrimSpace(tags.Title)
	return meta
}

// ParseCreationTime parses a creation tag such as
// "Sun 16 Aug 2019 18:32:00 +1000". Tags in the EXIF style
// "2019:08:16 10:32:00" are recovered as a date without a time.
func ParseCreationTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(creationLayout, raw); err == nil {
		return t, true
	}

	datePart, _, _ := strings.Cut(raw, " ")
	parts := strings.Split(datePart, ":")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	t, err := time.Parse(creationDateLayout, strings.Join(parts, "/"))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LocationLabel turns the photo's parent directory into a label:
// "Road_Trip_Part_2_2021" becomes "Road Trip Part".
func LocationLabel(imagePath string) string {
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" {
		return ""
	}
	dir := filepath.Base(filepath.Dir(imagePath))
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	dir = strings.ReplaceAll(dir, `\`, "")

	var words []string
	for _, token := range strings.Split(dir, "_") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, err := strconv.Atoi(token); err == nil {
			continue
		}
		words = append(words, token)
	}
	return strings.Join(words, " ")
}
