package sparkify

import (
	"math"
	"sort"
)

// DurationTolerance is the maximum difference, in seconds, between an
// event's reported play length and a catalog song's duration for the two to
// be considered the same song.
const DurationTolerance = 2.0

type songKey struct {
	title  string
	artist string
}

// BuildSongplays builds the songplays fact table. Events are filtered to
// NextSong, put in a global (ts, sessionId, userId) order, numbered with a
// monotonically increasing songplay_id, and left-joined against the catalog
// on exact title and artist-name equality plus DurationTolerance. Every play
// event yields exactly one row: unmatched events keep nil song and artist
// ids, and an event matching several catalog songs takes the one with the
// lowest song_id.
func BuildSongplays(events []EventRecord, songs []SongRecord) []SongplayRow {
	index := make(map[songKey][]SongRecord)
	for _, s := range songs {
		k := songKey{title: s.Title, artist: s.ArtistName}
		index[k] = append(index[k], s)
	}
	for _, candidates := range index {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].SongID < candidates[j].SongID })
	}

	plays := make([]EventRecord, 0, len(events))
	for _, e := range events {
		if e.Page == PageNextSong {
			plays = append(plays, e)
		}
	}
	sort.Slice(plays, func(i, j int) bool {
		a, b := plays[i], plays[j]
		if a.TS != b.TS {
			return a.TS < b.TS
		}
		if a.SessionID != b.SessionID {
			return a.SessionID < b.SessionID
		}
		return a.UserID < b.UserID
	})

	nexter := NewNexter()
	rows := make([]SongplayRow, 0, len(plays))
	for _, e := range plays {
		start := StartTime(e.TS)
		row := SongplayRow{
			SongplayID: int64(nexter.Next()),
			StartTime:  start,
			UserID:     e.UserID,
			Level:      e.Level,
			SessionID:  e.SessionID,
			Location:   e.Location,
			UserAgent:  e.UserAgent,
			Year:       int32(start.Year()),
			Month:      int32(start.Month()),
		}
		if match, ok := matchSong(e, index); ok {
			row.SongID = &match.SongID
			row.ArtistID = &match.ArtistID
		}
		rows = append(rows, row)
	}
	return rows
}

// matchSong returns the catalog record an event joins to. Candidates arrive
// sorted by song_id, so the first within tolerance is the deterministic
// winner for ambiguous matches.
func matchSong(e EventRecord, index map[songKey][]SongRecord) (SongRecord, bool) {
	for _, s := range index[songKey{title: e.Song, artist: e.Artist}] {
		if math.Abs(e.Length-s.Duration) < DurationTolerance {
			return s, true
		}
	}
	return SongRecord{}, false
}
