package nomis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"incidentapi/internal/model"
)

const (
	// AddendumAuthor is recorded as the creator of every addendum extracted from a NOMIS description.
	AddendumAuthor = "INCIDENT_REPORTING_API"

	userMarker = "User:"
	dateMarker = " Date:"
	timeLayout = "15:04"
)

// Accepted addendum date formats: 07-JUN-2024 and 07/06/2024.
var addendumDateLayouts = []string{"02-Jan-2006", "02/01/2006"}

var errMalformedMarker = errors.New("malformed addendum marker")

// SplitDescription separates a NOMIS description into the original text and the addenda
// appended to it, each introduced by "User:LAST,FIRST Date:dd-MON-yyyy HH:mm".
//
// A nil description yields a nil original. If any marker is malformed the whole input is
// returned unchanged with no addenda.
func SplitDescription(description *string) (*string, []model.DescriptionAddendum) {
	if description == nil {
		return nil, []model.DescriptionAddendum{}
	}
	text := *description

	starts := markerOffsets(text)
	if len(starts) == 0 {
		return &text, []model.DescriptionAddendum{}
	}

	addenda := make([]model.DescriptionAddendum, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		addendum, err := parseAddendum(text[start:end])
		if err != nil {
			return &text, []model.DescriptionAddendum{}
		}
		addendum.Sequence = i
		addenda = append(addenda, addendum)
	}

	original := text[:starts[0]]
	return &original, addenda
}

// JoinDescription renders an original description and its addenda back into the single
// free-text field NOMIS stores. Dates are always written as dd-MON-yyyy.
func JoinDescription(original string, addenda []model.DescriptionAddendum) string {
	var b strings.Builder
	b.WriteString(original)
	for _, a := range addenda {
		b.WriteString(userMarker)
		b.WriteString(a.LastName)
		b.WriteByte(',')
		b.WriteString(a.FirstName)
		b.WriteString(dateMarker)
		b.WriteString(strings.ToUpper(a.CreatedAt.Format(addendumDateLayouts[0])))
		b.WriteByte(' ')
		b.WriteString(a.CreatedAt.Format(timeLayout))
		b.WriteString(a.Text)
	}
	return b.String()
}

func markerOffsets(text string) []int {
	var offsets []int
	for from := 0; ; {
		i := strings.Index(text[from:], userMarker)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, from+i)
		from += i + len(userMarker)
	}
}

// parseAddendum parses one segment that starts with the user marker and runs up to the
// next marker or the end of the description.
func parseAddendum(segment string) (model.DescriptionAddendum, error) {
	rest := strings.TrimPrefix(segment, userMarker)

	nameEnd := strings.Index(rest, dateMarker)
	if nameEnd < 0 {
		return model.DescriptionAddendum{}, fmt.Errorf("%w: no date", errMalformedMarker)
	}
	lastName, firstName, err := splitName(rest[:nameEnd])
	if err != nil {
		return model.DescriptionAddendum{}, err
	}
	rest = rest[nameEnd+len(dateMarker):]

	dateEnd := strings.IndexByte(rest, ' ')
	if dateEnd < 0 || len(rest) < dateEnd+1+len(timeLayout) {
		return model.DescriptionAddendum{}, fmt.Errorf("%w: no timestamp", errMalformedMarker)
	}
	createdAt, err := parseTimestamp(rest[:dateEnd], rest[dateEnd+1:dateEnd+1+len(timeLayout)])
	if err != nil {
		return model.DescriptionAddendum{}, err
	}

	return model.DescriptionAddendum{
		CreatedBy: AddendumAuthor,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: createdAt,
		Text:      rest[dateEnd+1+len(timeLayout):],
	}, nil
}

func splitName(name string) (last, first string, err error) {
	last, first, ok := strings.Cut(name, ",")
	if !ok {
		return "", "", fmt.Errorf("%w: name %q has no comma", errMalformedMarker, name)
	}
	if last == "" || first == "" || strings.HasSuffix(last, " ") || strings.ContainsAny(name, "\r\n") {
		return "", "", fmt.Errorf("%w: bad name %q", errMalformedMarker, name)
	}
	return last, first, nil
}

func parseTimestamp(date, clock string) (time.Time, error) {
	for _, layout := range addendumDateLayouts {
		ts, err := time.Parse(layout+" "+timeLayout, date+" "+clock)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", errMalformedMarker, date+" "+clock)
}
