package jpholiday

import (
	"time"

	"golang.org/x/text/language"
)

// label carries the Japanese and English names of a holiday or weekday.
type label struct {
	ja string
	en string
}

type lang int

const (
	langJapanese lang = iota
	langEnglish
)

// supportedTags is ordered like the lang constants.
var supportedTags = []language.Tag{language.Japanese, language.English}

var labelMatcher = language.NewMatcher(supportedTags)

// langFor picks the label language for tag. Tags the matcher has no
// confidence in fall back to Japanese.
func langFor(tag language.Tag) lang {
	_, idx, conf := labelMatcher.Match(tag)
	if conf == language.No {
		return langJapanese
	}
	return lang(idx)
}

func (l label) in(lg lang) string {
	if lg == langEnglish {
		return l.en
	}
	return l.ja
}

var (
	labelNewYear           = label{"元日", "New Year's Day"}
	labelComingOfAge       = label{"成人の日", "Coming-of-Age Day"}
	labelFoundation        = label{"建国記念の日", "National Foundation Day"}
	labelVernalEquinox     = label{"春分の日", "Vernal Equinox Day"}
	labelShowa             = label{"昭和の日", "Showa Day"}
	labelGreenery          = label{"みどりの日", "Greenery Day"}
	labelEmperor           = label{"天皇誕生日", "Emperor's Birthday"}
	labelConstitution      = label{"憲法記念日", "Constitution Memorial Day"}
	labelChildren          = label{"こどもの日", "Children's Day"}
	labelCitizens          = label{"国民の休日", "Citizens' Holiday"}
	labelSubstitute        = label{"振替休日", "Substitute Holiday"}
	labelMarine            = label{"海の日", "Marine Day"}
	labelMountain          = label{"山の日", "Mountain Day"}
	labelAutumnalEquinox   = label{"秋分の日", "Autumn Equinox Day"}
	labelRespectForAged    = label{"敬老の日", "Respect-for-the-Aged Day"}
	labelHealthSports      = label{"体育の日", "Health-Sports Day"}
	labelCulture           = label{"文化の日", "Culture Day"}
	labelLaborThanksgiving = label{"勤労感謝の日", "Labor Thanksgiving Day"}
)

// weekdayLabels is indexed by time.Weekday (ordinal - 1).
var weekdayLabels = [7]label{
	{"日", "Sunday"},
	{"月", "Monday"},
	{"火", "Tuesday"},
	{"水", "Wednesday"},
	{"木", "Thursday"},
	{"金", "Friday"},
	{"土", "Saturday"},
}

func weekdayLabel(wd time.Weekday) label {
	return weekdayLabels[wd]
}
