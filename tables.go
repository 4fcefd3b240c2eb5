package sparkify

import (
	"strconv"
	"time"

	"github.com/Marcoc51/sparkify/parquet"
)

// SongRow is one row of the songs dimension table.
type SongRow struct {
	SongID   string  `parquet:"song_id"`
	Title    string  `parquet:"title"`
	ArtistID string  `parquet:"artist_id"`
	Year     int32   `parquet:"year"`
	Duration float64 `parquet:"duration"`
}

// Partitions declares the (year, artist_id) partition layout of the songs
// table.
func (r SongRow) Partitions() []parquet.Partition {
	return []parquet.Partition{
		{Key: "year", Value: strconv.Itoa(int(r.Year))},
		{Key: "artist_id", Value: r.ArtistID},
	}
}

// ArtistRow is one row of the artists dimension table. Artists are written
// unpartitioned.
type ArtistRow struct {
	ArtistID  string   `parquet:"artist_id"`
	Name      string   `parquet:"artist_name"`
	Location  string   `parquet:"artist_location"`
	Latitude  *float64 `parquet:"artist_latitude,optional"`
	Longitude *float64 `parquet:"artist_longitude,optional"`
}

// UserRow is one row of the users dimension table. Level reflects the user's
// subscription tier as of their latest observed play. Users are written
// unpartitioned.
type UserRow struct {
	UserID    string `parquet:"user_id"`
	FirstName string `parquet:"first_name"`
	LastName  string `parquet:"last_name"`
	Gender    string `parquet:"gender"`
	Level     string `parquet:"level"`
}

// TimeRow is one row of the time dimension table: the calendar breakdown of
// one distinct play timestamp, in UTC.
type TimeRow struct {
	StartTime time.Time `parquet:"start_time,timestamp(millisecond)"`
	Hour      int32     `parquet:"hour"`
	Day       int32     `parquet:"day"`
	Week      int32     `parquet:"week"`
	Month     int32     `parquet:"month"`
	Year      int32     `parquet:"year"`
}

// Partitions declares the (year, month) partition layout of the time table.
func (r TimeRow) Partitions() []parquet.Partition {
	return []parquet.Partition{
		{Key: "year", Value: strconv.Itoa(int(r.Year))},
		{Key: "month", Value: strconv.Itoa(int(r.Month))},
	}
}

// SongplayRow is one row of the songplays fact table. SongID and ArtistID
// are nil when the play could not be joined to the catalog. Year and Month
// come from the event's own start time, not the matched song's year.
type SongplayRow struct {
	SongplayID int64     `parquet:"songplay_id"`
	StartTime  time.Time `parquet:"start_time,timestamp(millisecond)"`
	UserID     string    `parquet:"user_id"`
	Level      string    `parquet:"level"`
	SongID     *string   `parquet:"song_id,optional"`
	ArtistID   *string   `parquet:"artist_id,optional"`
	SessionID  int64     `parquet:"session_id"`
	Location   string    `parquet:"location"`
	UserAgent  string    `parquet:"user_agent"`
	Year       int32     `parquet:"year"`
	Month      int32     `parquet:"month"`
}

// Partitions declares the (year, month) partition layout of the songplays
// table.
func (r SongplayRow) Partitions() []parquet.Partition {
	return []parquet.Partition{
		{Key: "year", Value: strconv.Itoa(int(r.Year))},
		{Key: "month", Value: strconv.Itoa(int(r.Month))},
	}
}
