package server

import (
	"github.com/comigor/journey-go/internal/view"
)

const excerptRunes = 50

// Action is a button the current screen offers.
type Action struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Screen is the rendered form of a snapshot. It holds nothing the machine
// does not already know.
type Screen struct {
	view.Snapshot
	Title   string   `json:"title"`
	Heading string   `json:"heading,omitempty"`
	Body    string   `json:"body,omitempty"`
	Excerpt string   `json:"excerpt,omitempty"`
	Actions []Action `json:"actions"`
	// Entries is nil when the journey could not be counted.
	Entries *int `json:"entries,omitempty"`
	// BetaNoticeText is set while the first-visit notice is showing.
	BetaNoticeText string `json:"beta_notice_text,omitempty"`
}

// Render derives the screen for snap. A non-nil entriesErr leaves the entry
// count out rather than reporting an empty journey.
func Render(snap view.Snapshot, entries int, entriesErr error) Screen {
	s := Screen{Snapshot: snap, Actions: []Action{}}
	if entriesErr == nil {
		s.Entries = &entries
	}

	switch snap.State {
	case view.StateLanding:
		s.Title = "Ruang aman untuk setiap cerita yang belum terdengar."
		s.Body = "Mari berbagi rasa, tanpa sekat. Perjalanan Jaticempaka adalah tentang kita dan mimpi kita."
		s.Actions = append(s.Actions, Action{ID: "start", Label: "Tulis sesuatu", Method: "POST", Path: "/api/start"})
	case view.StateComposing:
		s.Title = "Suara Hati"
		s.Body = "Ceritakan harimu..."
		label := "Kirim"
		if snap.Submission == view.Submitting {
			label = "Memproses..."
		}
		s.Actions = append(s.Actions,
			Action{ID: "cancel", Label: "Tutup", Method: "POST", Path: "/api/cancel"},
		)
		if snap.CanSubmit || snap.Submission == view.Submitting {
			s.Actions = append(s.Actions, Action{ID: "submit", Label: label, Method: "POST", Path: "/api/submit"})
		}
	case view.StateResult:
		s.Title = "Warta Jaticempaka"
		s.Heading = snap.LastResult
		s.Excerpt = Excerpt(snap.Draft)
		s.Actions = append(s.Actions,
			Action{ID: "back", Label: "Kembali", Method: "POST", Path: "/api/back"},
			Action{ID: "again", Label: "Tulis Lagi", Method: "POST", Path: "/api/again"},
		)
	}

	if snap.BetaNotice {
		s.BetaNoticeText = BetaNoticeText
		s.Actions = append(s.Actions, Action{ID: "dismiss_notice", Label: "Paham!", Method: "POST", Path: "/api/notice/dismiss"})
	}
	return s
}

// Excerpt shortens text to its first 50 runes, marking the cut with "...".
func Excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptRunes {
		return text
	}
	return string(r[:excerptRunes]) + "..."
}

// BetaNoticeText is the copy of the dismissible first-visit notice.
const BetaNoticeText = "Website ini masih beta dan dalam pengembangan. Semua yang ditulis tidak akan tersimpan selagi situs ini belum aktif secara publik. Terima kasih!"
