package media

import (
	"fmt"
	"strings"
)

// Audiobook is a narrated recording of a book.
type Audiobook struct {
	record
	durationMinutes int
	narrator        string
	audioFormat     string
}

// NewAudiobook validates all fields and returns a new available Audiobook.
func NewAudiobook(d Details, durationMinutes int, narrator, audioFormat string) (*Audiobook, error) {
	rec, err := newRecord(d)
	if err != nil {
		return nil, err
	}
	if err := validatePositive("durationMinutes", durationMinutes); err != nil {
		return nil, err
	}
	if err := validateNarrator(narrator); err != nil {
		return nil, err
	}
	if err := validateChoice("audioFormat", audioFormat, AudioFormats); err != nil {
		return nil, err
	}
	return &Audiobook{
		record:          rec,
		durationMinutes: durationMinutes,
		narrator:        narrator,
		audioFormat:     audioFormat,
	}, nil
}

// Kind returns KindAudiobook.
func (a *Audiobook) Kind() Kind { return KindAudiobook }

// DurationMinutes returns the running time in minutes.
func (a *Audiobook) DurationMinutes() int { return a.durationMinutes }

// Narrator returns the narrator's name.
func (a *Audiobook) Narrator() string { return a.narrator }

// AudioFormat returns the audio format as entered (e.g. "mp3").
func (a *Audiobook) AudioFormat() string { return a.audioFormat }

// SetDurationMinutes replaces the running time. It must be positive.
func (a *Audiobook) SetDurationMinutes(value int) error {
	if err := validatePositive("durationMinutes", value); err != nil {
		return err
	}
	a.durationMinutes = value
	return nil
}

// SetNarrator replaces the narrator. Blank names are rejected.
func (a *Audiobook) SetNarrator(value string) error {
	if err := validateNarrator(value); err != nil {
		return err
	}
	a.narrator = value
	return nil
}

// SetAudioFormat replaces the audio format. It must be one of AudioFormats.
func (a *Audiobook) SetAudioFormat(value string) error {
	if err := validateChoice("audioFormat", value, AudioFormats); err != nil {
		return err
	}
	a.audioFormat = value
	return nil
}

func (a *Audiobook) String() string {
	return fmt.Sprintf("%s - Narrated by %s, %s (%s)",
		a.record.String(), a.narrator, FormatDuration(a.durationMinutes), strings.ToUpper(a.audioFormat))
}

// FormatDuration renders minutes as "{h}h {m}m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
