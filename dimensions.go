package sparkify

import "sort"

// BuildSongs projects the catalog to the songs dimension. Duplicate song_ids
// keep the first record seen, and the output is sorted by song_id.
func BuildSongs(songs []SongRecord) []SongRow {
	seen := make(map[string]struct{}, len(songs))
	out := make([]SongRow, 0, len(songs))
	for _, s := range songs {
		if _, ok := seen[s.SongID]; ok {
			continue
		}
		seen[s.SongID] = struct{}{}
		out = append(out, SongRow{
			SongID:   s.SongID,
			Title:    s.Title,
			ArtistID: s.ArtistID,
			Year:     int32(s.Year),
			Duration: s.Duration,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SongID < out[j].SongID })
	return out
}

// BuildArtists projects the catalog to the artists dimension. An artist_id
// appearing on several records (possibly with conflicting locations) keeps
// the first record seen, and the output is sorted by artist_id.
func BuildArtists(songs []SongRecord) []ArtistRow {
	seen := make(map[string]struct{}, len(songs))
	out := make([]ArtistRow, 0, len(songs))
	for _, s := range songs {
		if _, ok := seen[s.ArtistID]; ok {
			continue
		}
		seen[s.ArtistID] = struct{}{}
		out = append(out, ArtistRow{
			ArtistID:  s.ArtistID,
			Name:      s.ArtistName,
			Location:  s.ArtistLocation,
			Latitude:  s.ArtistLatitude,
			Longitude: s.ArtistLongitude,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArtistID < out[j].ArtistID })
	return out
}

// BuildUsers builds the users dimension from play events. Only NextSong
// events with a user id count, and each user's row comes from their
// chronologically latest event, so Level is the latest observed tier. When
// two events share a timestamp the later one in input order wins. Output is
// sorted by user_id.
func BuildUsers(events []EventRecord) []UserRow {
	type candidate struct {
		row UserRow
		ts  int64
	}
	best := make(map[string]candidate)
	for _, e := range events {
		if e.Page != PageNextSong || e.UserID == "" {
			continue
		}
		if b, ok := best[e.UserID]; ok && b.ts > e.TS {
			continue
		}
		best[e.UserID] = candidate{
			row: UserRow{
				UserID:    e.UserID,
				FirstName: e.FirstName,
				LastName:  e.LastName,
				Gender:    e.Gender,
				Level:     e.Level,
			},
			ts: e.TS,
		}
	}
	out := make([]UserRow, 0, len(best))
	for _, c := range best {
		out = append(out, c.row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
