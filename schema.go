package sparkify

import (
	"fmt"
	"strconv"
)

// PageNextSong is the event page value which identifies a song play. Only
// events with this page feed the users and time dimensions and the songplays
// fact table.
const PageNextSong = "NextSong"

// SchemaError indicates that a raw record is missing a required field or
// carries a value which cannot be coerced to the expected type.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

// SongRecord is one record from the song metadata catalog. Year is 0 when
// unknown; latitude and longitude are nil when the catalog has none.
type SongRecord struct {
	SongID          string
	Title           string
	ArtistID        string
	ArtistName      string
	ArtistLocation  string
	ArtistLatitude  *float64
	ArtistLongitude *float64
	Year            int
	Duration        float64
}

// EventRecord is one logged user action. TS is epoch milliseconds. Fields
// other than Page and TS may be empty on non-play events (a page view has no
// song), and UserID is empty for logged-out sessions.
type EventRecord struct {
	Page      string
	UserID    string
	FirstName string
	LastName  string
	Gender    string
	Level     string
	TS        int64
	Song      string
	Artist    string
	Length    float64
	SessionID int64
	Location  string
	UserAgent string
}

// ParseSong builds a SongRecord from a raw decoded json object. Unknown keys
// are ignored; numeric fields arriving as strings are coerced.
func ParseSong(rec map[string]interface{}) (SongRecord, error) {
	var s SongRecord
	var err error
	if s.SongID, err = stringField(rec, "song_id", true); err != nil {
		return s, err
	}
	if s.Title, err = stringField(rec, "title", true); err != nil {
		return s, err
	}
	if s.ArtistID, err = stringField(rec, "artist_id", true); err != nil {
		return s, err
	}
	if s.ArtistName, err = stringField(rec, "artist_name", true); err != nil {
		return s, err
	}
	if s.ArtistLocation, err = stringField(rec, "artist_location", false); err != nil {
		return s, err
	}
	if s.ArtistLatitude, err = nullableFloatField(rec, "artist_latitude"); err != nil {
		return s, err
	}
	if s.ArtistLongitude, err = nullableFloatField(rec, "artist_longitude"); err != nil {
		return s, err
	}
	year, err := intField(rec, "year", false)
	if err != nil {
		return s, err
	}
	s.Year = int(year)
	if s.Duration, err = floatField(rec, "duration", true); err != nil {
		return s, err
	}
	return s, nil
}

// ParseEvent builds an EventRecord from a raw decoded json object. Only page
// and ts are required: the remaining fields are null on non-play events, and
// userId is empty for logged-out sessions.
func ParseEvent(rec map[string]interface{}) (EventRecord, error) {
	var e EventRecord
	var err error
	if e.Page, err = stringField(rec, "page", true); err != nil {
		return e, err
	}
	if e.TS, err = intField(rec, "ts", true); err != nil {
		return e, err
	}
	if e.UserID, err = stringField(rec, "userId", false); err != nil {
		return e, err
	}
	if e.FirstName, err = stringField(rec, "firstName", false); err != nil {
		return e, err
	}
	if e.LastName, err = stringField(rec, "lastName", false); err != nil {
		return e, err
	}
	if e.Gender, err = stringField(rec, "gender", false); err != nil {
		return e, err
	}
	if e.Level, err = stringField(rec, "level", false); err != nil {
		return e, err
	}
	if e.Song, err = stringField(rec, "song", false); err != nil {
		return e, err
	}
	if e.Artist, err = stringField(rec, "artist", false); err != nil {
		return e, err
	}
	if e.Length, err = floatField(rec, "length", false); err != nil {
		return e, err
	}
	if e.SessionID, err = intField(rec, "sessionId", false); err != nil {
		return e, err
	}
	if e.Location, err = stringField(rec, "location", false); err != nil {
		return e, err
	}
	if e.UserAgent, err = stringField(rec, "userAgent", false); err != nil {
		return e, err
	}
	return e, nil
}

func stringField(rec map[string]interface{}, name string, required bool) (string, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		if required {
			return "", &SchemaError{Field: name, Reason: "is missing"}
		}
		return "", nil
	}
	switch tv := v.(type) {
	case string:
		return tv, nil
	case float64:
		// ids sometimes arrive as json numbers
		if tv == float64(int64(tv)) {
			return strconv.FormatInt(int64(tv), 10), nil
		}
		return strconv.FormatFloat(tv, 'f', -1, 64), nil
	}
	return "", &SchemaError{Field: name, Reason: fmt.Sprintf("has type %T, want string", v)}
}

func floatField(rec map[string]interface{}, name string, required bool) (float64, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		if required {
			return 0, &SchemaError{Field: name, Reason: "is missing"}
		}
		return 0, nil
	}
	switch tv := v.(type) {
	case float64:
		return tv, nil
	case string:
		f, err := strconv.ParseFloat(tv, 64)
		if err != nil {
			return 0, &SchemaError{Field: name, Reason: fmt.Sprintf("has value %q, want a number", tv)}
		}
		return f, nil
	}
	return 0, &SchemaError{Field: name, Reason: fmt.Sprintf("has type %T, want a number", v)}
}

func intField(rec map[string]interface{}, name string, required bool) (int64, error) {
	f, err := floatField(rec, name, required)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func nullableFloatField(rec map[string]interface{}, name string) (*float64, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := floatField(rec, name, true)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
