package etl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Marcoc51/sparkify"
	pq "github.com/parquet-go/parquet-go"
)

const songAAA = `{"num_songs": 1, "artist_id": "ARJIE2Y1187B994AB7", "artist_latitude": null, "artist_longitude": null, "artist_location": "", "artist_name": "Line Renaud", "song_id": "SOUPIRU12A6D4FA1E1", "title": "Der Kleine Dompfaff", "duration": 152.92036, "year": 0}`

const songBBB = `{"num_songs": 1, "artist_id": "ARD7TVE1187B99BFB1", "artist_latitude": 35.14968, "artist_longitude": -90.04892, "artist_location": "Memphis, TN", "artist_name": "Casual", "song_id": "SOMZWCG12A8C13C480", "title": "I Didn't Mean To", "duration": 218.93179, "year": 1994}`

const logDay = `{"artist": "Line Renaud", "auth": "Logged In", "firstName": "Ryan", "gender": "M", "itemInSession": 0, "lastName": "Smith", "length": 152.5, "level": "free", "location": "San Jose-Sunnyvale-Santa Clara, CA", "method": "PUT", "page": "NextSong", "registration": 1541016707796.0, "sessionId": 583, "song": "Der Kleine Dompfaff", "status": 200, "ts": 1541440700796, "userAgent": "Mozilla/5.0", "userId": "26"}
{"artist": "Y", "auth": "Logged In", "firstName": "Ryan", "gender": "M", "itemInSession": 1, "lastName": "Smith", "length": 200.0, "level": "paid", "location": "San Jose-Sunnyvale-Santa Clara, CA", "method": "PUT", "page": "NextSong", "registration": 1541016707796.0, "sessionId": 583, "song": "X", "status": 200, "ts": 1541440800796, "userAgent": "Mozilla/5.0", "userId": "26"}
{"artist": null, "auth": "Logged In", "firstName": "Ryan", "gender": "M", "itemInSession": 2, "lastName": "Smith", "length": null, "level": "paid", "location": "San Jose-Sunnyvale-Santa Clara, CA", "method": "GET", "page": "Home", "registration": 1541016707796.0, "sessionId": 583, "song": null, "status": 200, "ts": 1541440900796, "userAgent": "Mozilla/5.0", "userId": "26"}
`

func mustWriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("making dirs: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
}

func setupInput(t *testing.T) string {
	t.Helper()
	in := t.TempDir()
	mustWriteFile(t, filepath.Join(in, "song_data", "A", "A", "A", "TRAAAAW128F429D538.json"), songAAA)
	mustWriteFile(t, filepath.Join(in, "song_data", "B", "B", "B", "TRABBBV128F92CA2DB.json"), songBBB)
	mustWriteFile(t, filepath.Join(in, "log_data", "2018-11-05-events.json"), logDay)
	return in
}

func TestRun(t *testing.T) {
	m := NewMain()
	m.Input = setupInput(t)
	m.Output = t.TempDir()
	if err := m.Run(); err != nil {
		t.Fatalf("running pipeline: %v", err)
	}

	// songs partitioned by (year, artist_id)
	songs, err := pq.ReadFile[sparkify.SongRow](filepath.Join(
		m.Output, "songs", "year=0", "artist_id=ARJIE2Y1187B994AB7", "data.parquet"))
	if err != nil {
		t.Fatalf("reading songs partition: %v", err)
	}
	if len(songs) != 1 || songs[0].SongID != "SOUPIRU12A6D4FA1E1" {
		t.Fatalf("wrong songs partition: %+v", songs)
	}

	// artists and users unpartitioned
	artists, err := pq.ReadFile[sparkify.ArtistRow](filepath.Join(m.Output, "artists", "data.parquet"))
	if err != nil {
		t.Fatalf("reading artists: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("wrong artists: %+v", artists)
	}
	users, err := pq.ReadFile[sparkify.UserRow](filepath.Join(m.Output, "users", "data.parquet"))
	if err != nil {
		t.Fatalf("reading users: %v", err)
	}
	if len(users) != 1 || users[0].UserID != "26" || users[0].Level != "paid" {
		t.Fatalf("wrong users: %+v", users)
	}

	// songplays partitioned by (year, month); one row per NextSong event
	plays, err := pq.ReadFile[sparkify.SongplayRow](filepath.Join(
		m.Output, "songplays", "year=2018", "month=11", "data.parquet"))
	if err != nil {
		t.Fatalf("reading songplays partition: %v", err)
	}
	if len(plays) != 2 {
		t.Fatalf("wrong songplay count: %+v", plays)
	}
	if plays[0].SongID == nil || *plays[0].SongID != "SOUPIRU12A6D4FA1E1" {
		t.Fatalf("first play should match the catalog: %+v", plays[0])
	}
	if plays[1].SongID != nil || plays[1].ArtistID != nil {
		t.Fatalf("second play should be unmatched: %+v", plays[1])
	}
	if plays[0].SongplayID != 0 || plays[1].SongplayID != 1 {
		t.Fatalf("wrong surrogate ids: %+v", plays)
	}

	// time partitioned by (year, month); two distinct play timestamps
	times, err := pq.ReadFile[sparkify.TimeRow](filepath.Join(
		m.Output, "time", "year=2018", "month=11", "data.parquet"))
	if err != nil {
		t.Fatalf("reading time partition: %v", err)
	}
	if len(times) != 2 {
		t.Fatalf("wrong time rows: %+v", times)
	}
}

func TestRunIdempotent(t *testing.T) {
	m := NewMain()
	m.Input = setupInput(t)
	m.Output = t.TempDir()
	if err := m.Run(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := pq.ReadFile[sparkify.SongplayRow](filepath.Join(
		m.Output, "songplays", "year=2018", "month=11", "data.parquet"))
	if err != nil {
		t.Fatalf("reading songplays: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := pq.ReadFile[sparkify.SongplayRow](filepath.Join(
		m.Output, "songplays", "year=2018", "month=11", "data.parquet"))
	if err != nil {
		t.Fatalf("rereading songplays: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rerun changed output:\n first %+v\nsecond %+v", first, second)
	}
}

func TestRunStrictByDefault(t *testing.T) {
	in := t.TempDir()
	mustWriteFile(t, filepath.Join(in, "song_data", "A", "bad.json"), `{"title": "no id"}`)
	mustWriteFile(t, filepath.Join(in, "log_data", "events.json"), ``)

	m := NewMain()
	m.Input = in
	m.Output = t.TempDir()
	if err := m.Run(); err == nil {
		t.Fatal("expected a malformed song record to abort the run")
	}

	m.Lenient = true
	if err := m.Run(); err != nil {
		t.Fatalf("lenient run should skip the bad record: %v", err)
	}
}
