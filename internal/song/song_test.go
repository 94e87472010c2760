package song

import "testing"

func TestNew_ParsedIsCopyOfRaw(t *testing.T) {
	s := New("mpris", Info{Artist: "A", Track: "T", Duration: 300})

	if s.Parsed != s.Raw {
		t.Errorf("Parsed = %+v, want copy of Raw %+v", s.Parsed, s.Raw)
	}

	// Parsed must be independently mutable.
	s.Parsed.Artist = "B"
	if s.Raw.Artist != "A" {
		t.Errorf("Raw.Artist = %q, want %q", s.Raw.Artist, "A")
	}
}

func TestResetData(t *testing.T) {
	s := New("mpris", Info{Artist: "A", Track: "T"})
	s.Parsed.Artist = "Corrected"
	s.Flags.IsValid = true
	s.Flags.IsCorrectedByUser = true
	s.Flags.IsScrobbled = true

	s.ResetData()

	if s.Parsed.Artist != "A" {
		t.Errorf("Parsed.Artist = %q, want %q", s.Parsed.Artist, "A")
	}
	if s.Flags.IsValid {
		t.Error("IsValid should be cleared by ResetData")
	}
	if s.Flags.IsCorrectedByUser {
		t.Error("IsCorrectedByUser should be cleared by ResetData")
	}
	// Scrobbled is terminal; identity did not change.
	if !s.Flags.IsScrobbled {
		t.Error("IsScrobbled must survive ResetData")
	}
}

func TestApplyEdit(t *testing.T) {
	s := New("mpris", Info{Artist: "A", Track: "T", Album: "Al"})

	s.ApplyEdit(Edit{Artist: "B", Track: ""})

	if s.Parsed.Artist != "B" {
		t.Errorf("Parsed.Artist = %q, want %q", s.Parsed.Artist, "B")
	}
	if s.Parsed.Track != "T" {
		t.Errorf("empty edit field overwrote Track: %q", s.Parsed.Track)
	}
	if s.Parsed.Album != "Al" {
		t.Errorf("empty edit field overwrote Album: %q", s.Parsed.Album)
	}
	if !s.Flags.IsCorrectedByUser {
		t.Error("IsCorrectedByUser not set")
	}
	if s.Raw.Artist != "A" {
		t.Error("edit must not touch Raw")
	}
}

func TestString(t *testing.T) {
	s := New("mpris", Info{Artist: "A", Track: "T"})
	if got := s.String(); got != "A - T" {
		t.Errorf("String() = %q, want %q", got, "A - T")
	}
}

func TestStorageKey_StableAcrossEdits(t *testing.T) {
	s := New("mpris", Info{Artist: "A", Track: "T"})
	key := s.StorageKey()

	s.ApplyEdit(Edit{Artist: "B"})
	if s.StorageKey() != key {
		t.Error("StorageKey changed after edit; must hash raw fields")
	}

	other := New("mpris", Info{Artist: "A", Track: "T2"})
	if other.StorageKey() == key {
		t.Error("different identities produced the same StorageKey")
	}

	otherConnector := New("web", Info{Artist: "A", Track: "T"})
	if otherConnector.StorageKey() == key {
		t.Error("different connectors produced the same StorageKey")
	}
}
