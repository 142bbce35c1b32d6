package domain

// Settings holds user preferences persisted under the "settings" key.
type Settings struct {
	Prepend          PrependSettings `json:"prepend"`
	URLInputVisible  bool            `json:"urlInputVisible"`
	CopyLinksVisible bool            `json:"copyLinksVisible"`
}

// PrependSettings controls the optional per-line prefix applied when
// copying URL lists to the clipboard.
type PrependSettings struct {
	Enabled       bool   `json:"enabled"`
	PrependString string `json:"prependString"`
}

// DefaultSettings returns the deep defaults applied when the stored
// value is missing or partial. Decoding stored JSON over this value
// keeps defaults for any absent field.
func DefaultSettings() Settings {
	return Settings{
		Prepend:          PrependSettings{Enabled: false, PrependString: ""},
		URLInputVisible:  true,
		CopyLinksVisible: true,
	}
}
