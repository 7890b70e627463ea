package generator

import "strings"

type Platform string

const (
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	TikTok    Platform = "tiktok"
	Twitter   Platform = "twitter"
)

type ContentType string

const (
	Promocional ContentType = "promocional"
	Educativo   ContentType = "educativo"
	Lifestyle   ContentType = "lifestyle"
)

type Tone string

const (
	Profesional Tone = "profesional"
	Casual      Tone = "casual"
	Divertido   Tone = "divertido"
	Elegante    Tone = "elegante"
)

type Length string

const (
	Corto    Length = "corto"
	Medio    Length = "medio"
	Largo    Length = "largo"
	MuyLargo Length = "muy_largo"
)

var (
	Platforms    = []Platform{Instagram, Facebook, TikTok, Twitter}
	ContentTypes = []ContentType{Promocional, Educativo, Lifestyle}
	Tones        = []Tone{Profesional, Casual, Divertido, Elegante}
	Lengths      = []Length{Corto, Medio, Largo, MuyLargo}
)

// Band is an inclusive word-count range.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b Band) Contains(words int) bool {
	return words >= b.Min && words <= b.Max
}

var bands = map[Length]Band{
	Corto:    {Min: 50, Max: 80},
	Medio:    {Min: 80, Max: 150},
	Largo:    {Min: 150, Max: 250},
	MuyLargo: {Min: 250, Max: 350},
}

// BandFor returns the band for l, or the medio band when l is unknown.
func BandFor(l Length) Band {
	if b, ok := bands[l]; ok {
		return b
	}
	return bands[Medio]
}

func (p Platform) Valid() bool    { return contains(Platforms, p) }
func (c ContentType) Valid() bool { return contains(ContentTypes, c) }
func (t Tone) Valid() bool        { return contains(Tones, t) }
func (l Length) Valid() bool      { return contains(Lengths, l) }

// Normalize lowercases and trims free-form input, turning spaces and
// dashes into the underscore used by muy_largo.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// The Parse helpers normalize free-form input. Unknown values are kept so
// the generator's fallbacks apply to them.
func ParsePlatform(s string) Platform       { return Platform(Normalize(s)) }
func ParseContentType(s string) ContentType { return ContentType(Normalize(s)) }
func ParseTone(s string) Tone               { return Tone(Normalize(s)) }
func ParseLength(s string) Length           { return Length(Normalize(s)) }

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
